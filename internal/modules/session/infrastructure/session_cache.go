package infrastructure

import (
	"sync"
	"time"

	"canteenWeb/internal/modules/session/application/port"
	"canteenWeb/internal/modules/session/domain"
)

const DefaultSessionTTL = 30 * time.Second

type sessionCacheEntry struct {
	user      domain.User
	expiresAt time.Time
}

// SessionCache keeps resolved users in memory for a short TTL, keyed by access token.
type SessionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]sessionCacheEntry
	now     func() time.Time
}

func NewSessionCache(ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionCache{ttl: ttl, entries: make(map[string]sessionCacheEntry), now: time.Now}
}

func (c *SessionCache) Get(token string) (domain.User, bool) {
	c.mu.RLock()
	entry, ok := c.entries[token]
	c.mu.RUnlock()
	if !ok {
		return domain.User{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.Delete(token)
		return domain.User{}, false
	}
	return entry.user, true
}

func (c *SessionCache) Set(token string, user domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[token] = sessionCacheEntry{user: user, expiresAt: c.now().Add(c.ttl)}
}

func (c *SessionCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, token)
}

// Sweep drops expired entries and reports how many were removed.
func (c *SessionCache) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for token, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, token)
			removed++
		}
	}
	return removed
}

var _ port.SessionCache = (*SessionCache)(nil)
