// Package cache provides the in-memory capability cache. Listings are
// cached per (server, kind) with a time-to-live and replaced wholesale;
// readers always observe a complete snapshot.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/agentry/mcplink/internal/domain"
)

// key addresses one listing snapshot.
type key struct {
	serverID string
	kind     domain.CapabilityKind
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache caches capability listings with a TTL and explicit invalidation.
// NewCache should be used to create instances of Cache.
// It is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[key]entry

	// ttl is the time-to-live for cached entries.
	ttl time.Duration

	// enabled determines if caching is enabled; when disabled every read misses.
	enabled bool

	// now supplies the current time; injectable for tests.
	now func() time.Time

	// logger is used for logging cache operations.
	logger hclog.Logger
}

// NewCache creates a new capability cache.
func NewCache(logger hclog.Logger, opts ...Option) (*Cache, error) {
	options, err := NewOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Cache{
		entries: make(map[key]entry),
		ttl:     options.ttl,
		enabled: options.enabled,
		now:     options.now,
		logger:  logger.Named("cache"),
	}, nil
}

// Get returns the cached snapshot for the given server and kind.
// Expired or missing entries report a miss.
func (c *Cache) Get(serverID string, kind domain.CapabilityKind) (any, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key{serverID: serverID, kind: kind}]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Put stores a listing snapshot for the given server and kind, replacing
// any previous entry atomically with respect to concurrent readers.
func (c *Cache) Put(serverID string, kind domain.CapabilityKind, value any) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key{serverID: serverID, kind: kind}] = entry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	c.logger.Debug("Cached listing", "server", serverID, "kind", kind, "ttl", c.ttl)
}

// Invalidate removes every cached kind for one server.
func (c *Cache) Invalidate(serverID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if k.serverID == serverID {
			delete(c.entries, k)
		}
	}
	c.logger.Debug("Invalidated cached listings", "server", serverID)
}

// InvalidateAll clears every server's every kind. Callers never observe a
// partially cleared cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[key]entry)
	c.logger.Debug("Invalidated all cached listings")
}
