package bitmem

import (
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/bitmem/element"
	"github.com/vuuvv/bitmem/log"
	"github.com/vuuvv/bitmem/utils"
	"github.com/vuuvv/errors"
	"go.uber.org/zap"
)

// Session is one clone/edit pass over a device image. It exclusively owns
// its MemoryMap for its whole lifetime; every element reached from Root
// aliases that one map. The engine does no locking — a session belongs to
// one goroutine.
type Session struct {
	Id     string
	Scheme *core.Scheme
	Mem    *core.MemoryMap
	root   *element.Struct
}

// NewSession binds a scheme to a fresh copy of image.
func NewSession(scheme *core.Scheme, image []byte) (*Session, error) {
	mem := core.NewMemoryMap(image)
	root, err := element.Bind(scheme, mem)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	s := &Session{
		Id:     utils.GenId(),
		Scheme: scheme,
		Mem:    mem,
		root:   root,
	}
	log.Debug("session opened",
		zap.String("id", s.Id),
		zap.Int("imageSize", mem.Len()),
		zap.Int("layoutSize", scheme.Size()))
	return s, nil
}

// NewBlankSession builds a session over a fill-pattern image, the starting
// point when no download from the device exists yet.
func NewBlankSession(scheme *core.Scheme, size int, fill byte) (*Session, error) {
	if size < scheme.Size() {
		return nil, core.NewOutOfBoundsError(0, scheme.Size(), size)
	}
	return NewSession(scheme, core.NewBlankMemoryMap(size, fill).Bytes())
}

func (s *Session) Root() *element.Struct {
	return s.root
}

// Get navigates by symbolic path from the root, e.g. ".memory[3].name".
func (s *Session) Get(path string) (element.Element, error) {
	return s.root.GetPath(path)
}

// Fill floods a byte range of the image with one pattern byte.
func (s *Session) Fill(offset, length int, pattern byte) error {
	return s.Mem.Fill(offset, length, pattern)
}

// Dump returns the whole image, ready for upload to the device.
func (s *Session) Dump() []byte {
	return s.Mem.Bytes()
}

// Printable renders a byte range for diagnostics; end < 0 dumps to the end.
func (s *Session) Printable(start, end int) string {
	return s.Mem.Printable(start, end)
}
