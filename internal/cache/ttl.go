package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PersistedEntry is the durable form of one cache entry: the key and value
// are kept as raw JSON so one backing store can serve caches of any type.
type PersistedEntry struct {
	Key       json.RawMessage `bson:"key" json:"key"`
	Value     json.RawMessage `bson:"value" json:"value"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time       `bson:"expires_at" json:"expires_at"`
}

// Backing is an optional durable store. The cache re-serializes its whole
// entry set under one namespaced key after every mutating call.
type Backing interface {
	Save(ctx context.Context, namespace string, entries []PersistedEntry) error
	Load(ctx context.Context, namespace string) ([]PersistedEntry, error)
}

type entry[V any] struct {
	value     V
	createdAt time.Time
	expiresAt time.Time
}

type Config struct {
	// Namespace keys the durable copy; required when Backing is set.
	Namespace  string
	MaxSize    int
	DefaultTTL time.Duration
	Backing    Backing
	Logger     *zap.SugaredLogger
}

// Cache is an expiring key/value store with bounded size. Entries past their
// TTL are deleted lazily on access and eagerly by Cleanup; when the store is
// full the single oldest entry (by creation time) is evicted to make room.
// The cache never makes network calls of its own.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]entry[V]
	namespace  string
	maxSize    int
	defaultTTL time.Duration
	backing    Backing
	logger     *zap.SugaredLogger
}

type Stats struct {
	Total   int           `json:"total"`
	Valid   int           `json:"valid"`
	Expired int           `json:"expired"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
}

func New[K comparable, V any](cfg Config) *Cache[K, V] {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 100
	}
	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Cache[K, V]{
		entries:    make(map[K]entry[V]),
		namespace:  cfg.Namespace,
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		backing:    cfg.Backing,
		logger:     logger,
	}
}

func (c *Cache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, c.defaultTTL)
}

func (c *Cache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	now := time.Now()
	c.entries[key] = entry[V]{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}

	c.persist()
}

// evictOldest removes the single entry with the smallest creation timestamp.
// Caller must hold the lock.
func (c *Cache[K, V]) evictOldest() {
	var oldestKey K
	var oldestAt time.Time
	found := false

	for key, e := range c.entries {
		if !found || e.createdAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.createdAt
			found = true
		}
	}

	if found {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		c.persist()
		var zero V
		return zero, false
	}

	return e.value, true
}

func (c *Cache[K, V]) Has(key K) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.persist()
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.persist()
}

// Cleanup sweeps every expired entry and returns how many were removed. It is
// idempotent and safe to run on a timer alongside normal traffic.
func (c *Cache[K, V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	if removed > 0 {
		c.persist()
	}

	return removed
}

func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	stats := Stats{
		Total:   len(c.entries),
		MaxSize: c.maxSize,
		TTL:     c.defaultTTL,
	}
	for _, e := range c.entries {
		if now.After(e.expiresAt) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}

	return stats
}

// Restore loads the durable copy, skipping entries that expired while the
// process was down. No-op without a backing store.
func (c *Cache[K, V]) Restore(ctx context.Context) error {
	if c.backing == nil {
		return nil
	}

	persisted, err := c.backing.Load(ctx, c.namespace)
	if err != nil {
		return fmt.Errorf("failed to load cache %q: %w", c.namespace, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, p := range persisted {
		if now.After(p.ExpiresAt) {
			continue
		}

		var key K
		if err := json.Unmarshal(p.Key, &key); err != nil {
			c.logger.Warnw("skipping undecodable cache key", "namespace", c.namespace, "error", err)
			continue
		}
		var value V
		if err := json.Unmarshal(p.Value, &value); err != nil {
			c.logger.Warnw("skipping undecodable cache value", "namespace", c.namespace, "error", err)
			continue
		}

		c.entries[key] = entry[V]{
			value:     value,
			createdAt: p.CreatedAt,
			expiresAt: p.ExpiresAt,
		}
	}

	return nil
}

// persist writes the whole entry set to the backing store. Caller must hold
// the lock. Failures are logged, not returned: the durable copy is an
// optimization, not the source of truth.
func (c *Cache[K, V]) persist() {
	if c.backing == nil {
		return
	}

	persisted := make([]PersistedEntry, 0, len(c.entries))
	for key, e := range c.entries {
		rawKey, err := json.Marshal(key)
		if err != nil {
			c.logger.Warnw("failed to encode cache key", "namespace", c.namespace, "error", err)
			continue
		}
		rawValue, err := json.Marshal(e.value)
		if err != nil {
			c.logger.Warnw("failed to encode cache value", "namespace", c.namespace, "error", err)
			continue
		}
		persisted = append(persisted, PersistedEntry{
			Key:       rawKey,
			Value:     rawValue,
			CreatedAt: e.createdAt,
			ExpiresAt: e.expiresAt,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.backing.Save(ctx, c.namespace, persisted); err != nil {
		c.logger.Warnw("failed to persist cache", "namespace", c.namespace, "error", err)
	}
}
