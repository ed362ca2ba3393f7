// Package assets loads, decodes, and caches the 3D models behind catalog
// products.
package assets

import (
	"sync"

	"github.com/vitrinelabs/vitrine/internal/model"
)

// Cache is an in-memory cache of decoded models keyed by model URI.
type Cache struct {
	data map[string]*model.Model
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*model.Model),
	}
}

// Get retrieves a decoded model from cache.
func (c *Cache) Get(uri string) (*model.Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.data[uri]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return m, ok
}

// Set stores a decoded model in cache.
func (c *Cache) Set(uri string, m *model.Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[uri] = m
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*model.Model)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
