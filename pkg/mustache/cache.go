package mustache

import (
	"container/list"
	"os"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the template cache
type CacheConfig struct {
	// MaxSize is the maximum number of template files to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached template files. 0 means no expiration.
	TTL time.Duration
}

// TemplateCache caches the text of template files loaded by path, so
// repeated renders of the same file skip the filesystem.
type TemplateCache struct {
	mu     sync.RWMutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key     string
	text    string
	expiry  time.Time
	element *list.Element
}

// NewTemplateCache creates a new template cache with default configuration
func NewTemplateCache() *TemplateCache {
	config := DefaultConfig()
	return NewTemplateCacheWithConfig(CacheConfig{
		MaxSize: config.CacheMaxSize,
		TTL:     config.CacheTTL,
	})
}

// NewTemplateCacheWithConfig creates a new template cache with the given configuration
func NewTemplateCacheWithConfig(config CacheConfig) *TemplateCache {
	return &TemplateCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Load retrieves the template text for a file path, reading the file
// on a cache miss. Read failures are reported as system errors.
func (tc *TemplateCache) Load(path string) (string, error) {
	if tc.config.MaxSize > 0 {
		if text, ok := tc.Get(path); ok {
			return text, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", newSystemError(err)
	}
	text := string(raw)

	if tc.config.MaxSize > 0 {
		tc.Set(path, text)
	}
	return text, nil
}

// Get retrieves template text from cache without reading any file
func (tc *TemplateCache) Get(key string) (string, bool) {
	tc.mu.RLock()
	entry, exists := tc.cache[key]
	tc.mu.RUnlock()

	if !exists {
		return "", false
	}

	// Check expiry
	if tc.config.TTL > 0 && time.Now().After(entry.expiry) {
		tc.Remove(key)
		return "", false
	}

	// Move to front of LRU
	tc.mu.Lock()
	tc.lru.MoveToFront(entry.element)
	tc.mu.Unlock()

	return entry.text, true
}

// Set adds template text to the cache
func (tc *TemplateCache) Set(key string, text string) {
	// Check if caching is disabled
	if tc.config.MaxSize == 0 {
		return
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Check if key already exists
	if existing, exists := tc.cache[key]; exists {
		existing.text = text
		if tc.config.TTL > 0 {
			existing.expiry = time.Now().Add(tc.config.TTL)
		}
		tc.lru.MoveToFront(existing.element)
		return
	}

	// Check if we need to evict
	if tc.lru.Len() >= tc.config.MaxSize {
		// Evict least recently used
		oldest := tc.lru.Back()
		if oldest != nil {
			oldEntry := oldest.Value.(*cacheEntry)
			delete(tc.cache, oldEntry.key)
			tc.lru.Remove(oldest)
		}
	}

	// Create new entry
	expiry := time.Time{}
	if tc.config.TTL > 0 {
		expiry = time.Now().Add(tc.config.TTL)
	}

	entry := &cacheEntry{
		key:    key,
		text:   text,
		expiry: expiry,
	}

	// Add to LRU list
	element := tc.lru.PushFront(entry)
	entry.element = element

	// Add to cache map
	tc.cache[key] = entry
}

// Remove removes template text from the cache
func (tc *TemplateCache) Remove(key string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	entry, exists := tc.cache[key]
	if !exists {
		return
	}

	delete(tc.cache, key)
	tc.lru.Remove(entry.element)
}

// Clear removes all template text from the cache
func (tc *TemplateCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cache = make(map[string]*cacheEntry)
	tc.lru = list.New()
}

// Size returns the current number of cached templates
func (tc *TemplateCache) Size() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.cache)
}
