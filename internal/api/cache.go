package api

import (
	"strings"
	"sync"
	"time"
)

const defaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// Cache is the client's single in-memory store of fetched responses, keyed
// by logical resource path. Mutations invalidate entries to force a re-fetch
// rather than patching cached data in place.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     defaultCacheTTL,
	}
}

// Get returns the cached body for key if present and unexpired.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.body, true
}

// Set stores body under key with the default TTL.
func (c *Cache) Set(key string, body []byte) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{body: body, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops every entry whose key starts with prefix.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
