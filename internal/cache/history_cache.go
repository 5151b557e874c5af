package cache

import (
	"sync"
	"time"

	"app/internal/model"
)

// HistoryCache keeps the most recently fetched history page per user for a
// fixed TTL. Entries are disposable: a new extraction does NOT invalidate the
// owner's entry, so history may be stale for up to the TTL. That staleness
// window is part of the contract, not an accident.
type HistoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	records   []model.ProcessedImage
	expiresAt time.Time
}

func NewHistoryCache(ttl time.Duration) *HistoryCache {
	return &HistoryCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached page for userID, or false if absent or expired.
func (c *HistoryCache) Get(userID string) ([]model.ProcessedImage, bool) {
	c.mu.RLock()
	e, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.records, true
}

// Set stores records as userID's current page. Concurrent fills for the same
// user race benignly; last write wins.
func (c *HistoryCache) Set(userID string, records []model.ProcessedImage) {
	c.mu.Lock()
	c.entries[userID] = entry{records: records, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
