package pypage

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the document cache
type CacheConfig struct {
	// MaxSize is the maximum number of documents to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached documents. 0 means no expiration.
	TTL time.Duration
}

// DocumentCache caches prepared documents keyed by path. Prepared documents
// are immutable, so a cached document can be rendered any number of times.
type DocumentCache struct {
	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key     string
	doc     *PreparedDocument
	expiry  time.Time
	element *list.Element
}

// NewDocumentCache creates a new document cache from the global configuration
func NewDocumentCache() *DocumentCache {
	config := GetGlobalConfig()
	return NewDocumentCacheWithConfig(CacheConfig{
		MaxSize: config.CacheMaxSize,
		TTL:     config.CacheTTL,
	})
}

// NewDocumentCacheWithConfig creates a new document cache with the given configuration
func NewDocumentCacheWithConfig(config CacheConfig) *DocumentCache {
	return &DocumentCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Get retrieves a document from the cache
func (dc *DocumentCache) Get(key string) (*PreparedDocument, bool) {
	dc.mu.RLock()
	entry, exists := dc.cache[key]
	dc.mu.RUnlock()

	if !exists {
		return nil, false
	}

	// Check expiry
	if dc.config.TTL > 0 && time.Now().After(entry.expiry) {
		dc.Remove(key)
		return nil, false
	}

	// Move to front of LRU
	dc.mu.Lock()
	dc.lru.MoveToFront(entry.element)
	dc.mu.Unlock()

	return entry.doc, true
}

// Set adds a document to the cache
func (dc *DocumentCache) Set(key string, doc *PreparedDocument) {
	if dc.config.MaxSize == 0 {
		return
	}

	dc.mu.Lock()
	defer dc.mu.Unlock()

	// Update an existing entry in place
	if existing, exists := dc.cache[key]; exists {
		existing.doc = doc
		if dc.config.TTL > 0 {
			existing.expiry = time.Now().Add(dc.config.TTL)
		}
		dc.lru.MoveToFront(existing.element)
		return
	}

	// Evict the least recently used entry if full
	if dc.lru.Len() >= dc.config.MaxSize {
		oldest := dc.lru.Back()
		if oldest != nil {
			oldEntry := oldest.Value.(*cacheEntry)
			delete(dc.cache, oldEntry.key)
			dc.lru.Remove(oldest)
		}
	}

	expiry := time.Time{}
	if dc.config.TTL > 0 {
		expiry = time.Now().Add(dc.config.TTL)
	}

	entry := &cacheEntry{
		key:    key,
		doc:    doc,
		expiry: expiry,
	}
	entry.element = dc.lru.PushFront(entry)
	dc.cache[key] = entry
}

// Remove removes a document from the cache
func (dc *DocumentCache) Remove(key string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	entry, exists := dc.cache[key]
	if !exists {
		return
	}

	delete(dc.cache, key)
	dc.lru.Remove(entry.element)
}

// Clear removes all documents from the cache
func (dc *DocumentCache) Clear() {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.cache = make(map[string]*cacheEntry)
	dc.lru.Init()
}

// Len returns the number of cached documents
func (dc *DocumentCache) Len() int {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return dc.lru.Len()
}

// defaultCache is the cache used by the default engine
var defaultCache = NewDocumentCacheWithConfig(CacheConfig{MaxSize: 100})
