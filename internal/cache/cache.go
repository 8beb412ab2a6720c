// Package cache provides a content-addressed cache of per-file parse results, so repeated
// compilation runs over an unchanged document do not re-lex, re-parse or re-validate it. The
// interface mirrors the teacher's operation cache: a narrow Get/Add surface with a Nop
// implementation for callers who want no caching at all.
package cache

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/cespare/xxhash/v2"
)

// Key is a content hash of a document's source bytes plus its file path (the path is included
// because identical source in two different files can fold to different package names).
type Key uint64

// KeyOf hashes filePath and source into a cache Key.
func KeyOf(filePath string, source []byte) Key {
	h := xxhash.New()
	_, _ = h.WriteString(filePath)
	_, _ = h.Write([]byte{0}) // separator, so "ab"+"c" and "a"+"bc" don't collide
	_, _ = h.Write(source)
	return Key(h.Sum64())
}

// DocumentCache caches an arbitrary per-file parse result value, keyed by Key. Callers store
// whatever their walker produces (the compiler stores its unexported per-document result); the cache itself
// is agnostic to the value's shape.
type DocumentCache interface {
	// Get returns the cached value for key, and whether it was present.
	Get(key Key) (interface{}, bool)
	// Add stores value under key, evicting the least-recently-used entry if the cache is full.
	Add(key Key, value interface{})
}

// LRUDocumentCache is a DocumentCache backed by a fixed-capacity least-recently-used eviction
// policy.
type LRUDocumentCache struct {
	cache *lru.Cache
}

// NewLRUDocumentCache builds an LRUDocumentCache holding at most size entries.
func NewLRUDocumentCache(size int) (*LRUDocumentCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUDocumentCache{cache: c}, nil
}

func (c *LRUDocumentCache) Get(key Key) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *LRUDocumentCache) Add(key Key, value interface{}) {
	c.cache.Add(key, value)
}

// NopDocumentCache never caches: Get always misses, Add is a no-op. It is the default when a
// caller configures no cache, matching the teacher's NopOperationCache.
type NopDocumentCache struct{}

func (NopDocumentCache) Get(Key) (interface{}, bool) { return nil, false }
func (NopDocumentCache) Add(Key, interface{})        {}

var (
	_ DocumentCache = (*LRUDocumentCache)(nil)
	_ DocumentCache = NopDocumentCache{}
)
