package repository

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/okian/pele/pkg/metrics"
)

// Cache keeps recently computed rankings keyed by their query. A zero-size
// cache stores nothing.
type Cache struct {
	lru *lru.Cache
}

// NewCache creates a cache of at most size rankings.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return &Cache{}, nil
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Get returns the ranking cached under key.
func (c *Cache) Get(key string) (Store, bool) {
	if c.lru == nil {
		metrics.RecordCacheMiss()
		return nil, false
	}
	v, ok := c.lru.Get(key)
	if !ok {
		metrics.RecordCacheMiss()
		return nil, false
	}
	metrics.RecordCacheHit()
	return v.(Store), true
}

// Add stores s under key, evicting the least recently used entry when full.
func (c *Cache) Add(key string, s Store) {
	if c.lru != nil {
		c.lru.Add(key, s)
	}
}

// Purge drops every entry, e.g. after the dataset is reloaded.
func (c *Cache) Purge() {
	if c.lru != nil {
		c.lru.Purge()
	}
}

// Len returns the number of cached rankings.
func (c *Cache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}
