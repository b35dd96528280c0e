package core

import (
	"sync"
	"time"

	"github.com/vuuvv/bitmem/utils"
)

// CompileRecord is one entry of the cache's diagnostic history.
type CompileRecord struct {
	Time time.Time
	Size int
	Hit  bool
	Err  error
}

// SchemeCache memoizes compiled schemas by their exact text. It is an
// explicit object handed to whoever needs it, not ambient process state.
// Eviction is oldest-first once maxEntries is reached.
type SchemeCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]*Scheme
	order   []string
	history *utils.LockFreeCircularBuffer[CompileRecord]
}

func NewSchemeCache(maxEntries int) *SchemeCache {
	if maxEntries <= 0 {
		maxEntries = 16
	}
	return &SchemeCache{
		max:     maxEntries,
		entries: map[string]*Scheme{},
		history: utils.NewLockFreeCircularBuffer[CompileRecord](32),
	}
}

// Get returns the cached Scheme for text, compiling and resolving on miss.
// Two Gets with identical text return the identical *Scheme.
func (this *SchemeCache) Get(text string) (*Scheme, error) {
	this.mu.Lock()
	defer this.mu.Unlock()

	if s, ok := this.entries[text]; ok {
		this.history.Add(&CompileRecord{Time: time.Now(), Size: s.Size(), Hit: true})
		return s, nil
	}

	s, err := NewScheme(text)
	if err != nil {
		this.history.Add(&CompileRecord{Time: time.Now(), Err: err})
		return nil, err
	}

	if len(this.order) >= this.max {
		oldest := this.order[0]
		this.order = this.order[1:]
		delete(this.entries, oldest)
	}
	this.entries[text] = s
	this.order = append(this.order, text)
	this.history.Add(&CompileRecord{Time: time.Now(), Size: s.Size()})
	return s, nil
}

func (this *SchemeCache) Len() int {
	this.mu.Lock()
	defer this.mu.Unlock()
	return len(this.entries)
}

func (this *SchemeCache) Histories() []*CompileRecord {
	return this.history.GetAll()
}
