package element

import (
	"strconv"
	"strings"

	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/bitmem/utils"
)

// getPath walks a symbolic path from an element, e.g.
//
//	.mystruct.foo[2].field1
//	[3]
//	.bar
//
// An empty path returns the element itself.
func getPath(e Element, path string) (Element, error) {
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return e, nil
	}

	if path[0] == '[' {
		end := strings.IndexByte(path, ']')
		if end < 0 {
			return nil, core.NewTypeMismatchError(e.GetName(), "malformed path %q", path)
		}
		idx, err := strconv.Atoi(path[1:end])
		if err != nil {
			return nil, core.NewTypeMismatchError(e.GetName(), "malformed index in path %q", path)
		}
		rest := path[end+1:]

		switch v := e.(type) {
		case *Array:
			child, err := v.Index(idx)
			if err != nil {
				return nil, err
			}
			return getPath(child, rest)
		case *BitArray:
			child, err := v.Index(idx)
			if err != nil {
				return nil, err
			}
			return getPath(child, rest)
		}
		return nil, core.NewTypeMismatchError(e.GetName(), "cannot index a %T", e)
	}

	name := path
	rest := ""
	if i := strings.IndexAny(path, ".["); i >= 0 {
		name, rest = path[:i], path[i:]
	}

	s, ok := utils.CastTo[*Struct](e)
	if !ok {
		return nil, core.NewTypeMismatchError(e.GetName(), "cannot navigate %q through a %T", name, e)
	}
	child, err := s.Field(name)
	if err != nil {
		return nil, err
	}
	return getPath(child, rest)
}
