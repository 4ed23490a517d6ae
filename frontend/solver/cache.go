package solver

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	info *ClassInfo
	err  error
}

// TypeCache memoizes class loading per qualified name, misses included.
// Entries are never invalidated. It is safe for concurrent use and loads
// each name at most once even under contention.
type TypeCache struct {
	entries sync.Map // string -> cacheEntry
	group   singleflight.Group
	size    atomic.Int64
}

func NewTypeCache() *TypeCache {
	return &TypeCache{}
}

// GetOrLoad returns the cached result for name, running load once if the
// name has not been seen.
func (c *TypeCache) GetOrLoad(name string, load func() (*ClassInfo, error)) (*ClassInfo, error) {
	if v, ok := c.entries.Load(name); ok {
		e := v.(cacheEntry)
		return e.info, e.err
	}
	v, _, _ := c.group.Do(name, func() (any, error) {
		if v, ok := c.entries.Load(name); ok {
			return v, nil
		}
		info, err := load()
		e := cacheEntry{info: info, err: err}
		if _, loaded := c.entries.LoadOrStore(name, e); !loaded {
			c.size.Add(1)
		}
		return e, nil
	})
	e := v.(cacheEntry)
	return e.info, e.err
}

// Len is the number of cached names, hits and misses alike.
func (c *TypeCache) Len() int {
	return int(c.size.Load())
}
