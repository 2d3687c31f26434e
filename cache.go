package sitedef

import (
	"context"
	"sync"
	"time"
)

// PageCache is an in-memory copy of the content index with a TTL.
type PageCache struct {
	mu      sync.RWMutex
	pages   []IndexedPage
	byPath  map[string]IndexedPage
	fetched time.Time
	ttl     time.Duration
	store   *Store
	now     func() time.Time
}

// NewPageCache creates a PageCache backed by the given Store.
func NewPageCache(s *Store, ttl time.Duration) *PageCache {
	return &PageCache{store: s, ttl: ttl, now: time.Now}
}

func (c *PageCache) valid() bool {
	return c.pages != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.byPath = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached pages after making sure they are fresh.
// It tries a read lock first and only takes the write lock to reload.
func (c *PageCache) ensureLoaded(ctx context.Context) ([]IndexedPage, map[string]IndexedPage, error) {
	c.mu.RLock()
	if c.valid() {
		pages, byPath := c.pages, c.byPath
		c.mu.RUnlock()
		return pages, byPath, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		pages, err := c.store.ListPages(ctx)
		if err != nil {
			return nil, nil, err
		}
		byPath := make(map[string]IndexedPage, len(pages))
		for _, p := range pages {
			byPath[p.Path] = p
		}
		c.pages, c.byPath, c.fetched = pages, byPath, c.now()
	}
	return c.pages, c.byPath, nil
}

// ListPages returns all indexed pages.
func (c *PageCache) ListPages(ctx context.Context) ([]IndexedPage, error) {
	pages, _, err := c.ensureLoaded(ctx)
	return pages, err
}

// GetPage returns the page at path from the cache, or ErrNotFound.
func (c *PageCache) GetPage(ctx context.Context, path string) (IndexedPage, error) {
	_, byPath, err := c.ensureLoaded(ctx)
	if err != nil {
		return IndexedPage{}, err
	}
	p, ok := byPath[path]
	if !ok {
		return IndexedPage{}, ErrNotFound
	}
	return p, nil
}
