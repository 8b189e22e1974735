package statistics

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_statistics

import (
	"context"
	"sync"
	"time"
)

// UserDirectory resolves user IDs to display names
type UserDirectory interface {
	LookupUserName(ctx context.Context, userID string) (string, error)
}

type cachedName struct {
	name    string
	expires time.Time
}

// NameCache remembers resolved display names for a fixed time
type NameCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	names map[string]cachedName
	now   func() time.Time
}

// NewNameCache creates a cache whose entries live for ttl
func NewNameCache(ttl time.Duration) *NameCache {
	return &NameCache{
		ttl:   ttl,
		names: make(map[string]cachedName),
		now:   time.Now,
	}
}

// Get returns a cached name that has not expired
func (c *NameCache) Get(userID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.names[userID]
	if !ok || !c.now().Before(entry.expires) {
		return "", false
	}
	return entry.name, true
}

// Put stores a name
func (c *NameCache) Put(userID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names[userID] = cachedName{name: name, expires: c.now().Add(c.ttl)}
}

// Purge drops expired entries and returns how many were removed
func (c *NameCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, entry := range c.names {
		if !now.Before(entry.expires) {
			delete(c.names, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, expired or not
func (c *NameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}
