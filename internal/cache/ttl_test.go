package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCache_PutGet(t *testing.T) {
	c := New[string, int](Config{MaxSize: 10, DefaultTTL: time.Minute})

	c.Put("a", 1)

	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("expected 1, got %v (ok=%v)", got, ok)
	}
	if !c.Has("a") {
		t.Fatal("expected Has to report the entry")
	}
}

func TestCache_ExpiryOnAccess(t *testing.T) {
	c := New[string, string](Config{MaxSize: 10, DefaultTTL: time.Minute})

	c.PutWithTTL("a", "short-lived", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to be expired")
	}
	if c.Has("a") {
		t.Fatal("expected Has to report expiry")
	}

	stats := c.Stats()
	if stats.Total != 0 {
		t.Fatalf("expected lazy delete on access, total=%d", stats.Total)
	}
}

func TestCache_EvictsSingleOldestEntry(t *testing.T) {
	c := New[string, int](Config{MaxSize: 3, DefaultTTL: time.Minute})

	// creation timestamps must be strictly ordered
	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("k%d", i), i)
		time.Sleep(2 * time.Millisecond)
	}

	c.Put("k3", 3)

	if c.Has("k0") {
		t.Fatal("expected oldest entry to be evicted")
	}
	for i := 1; i <= 3; i++ {
		if !c.Has(fmt.Sprintf("k%d", i)) {
			t.Fatalf("expected k%d to survive eviction", i)
		}
	}
	if got := c.Stats().Total; got != 3 {
		t.Fatalf("expected exactly one eviction, total=%d", got)
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := New[string, int](Config{MaxSize: 2, DefaultTTL: time.Minute})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)

	if !c.Has("a") || !c.Has("b") {
		t.Fatal("overwriting an existing key must not evict")
	}
	if got, _ := c.Get("a"); got != 10 {
		t.Fatalf("expected overwritten value, got %d", got)
	}
}

func TestCache_CleanupSweepsExpired(t *testing.T) {
	c := New[string, int](Config{MaxSize: 10, DefaultTTL: time.Minute})

	c.PutWithTTL("dead1", 1, 5*time.Millisecond)
	c.PutWithTTL("dead2", 2, 5*time.Millisecond)
	c.Put("alive", 3)
	time.Sleep(10 * time.Millisecond)

	if removed := c.Cleanup(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	// idempotent
	if removed := c.Cleanup(); removed != 0 {
		t.Fatalf("expected second sweep to remove nothing, got %d", removed)
	}
	if !c.Has("alive") {
		t.Fatal("expected live entry to survive sweep")
	}
}

func TestCache_Stats(t *testing.T) {
	c := New[string, int](Config{MaxSize: 5, DefaultTTL: time.Minute})

	c.Put("a", 1)
	c.PutWithTTL("b", 2, 5*time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	stats := c.Stats()
	if stats.Total != 2 || stats.Valid != 1 || stats.Expired != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MaxSize != 5 || stats.TTL != time.Minute {
		t.Fatalf("unexpected config stats: %+v", stats)
	}
}

type memoryBacking struct {
	mu    sync.Mutex
	saved map[string][]PersistedEntry
	saves int
}

func newMemoryBacking() *memoryBacking {
	return &memoryBacking{saved: make(map[string][]PersistedEntry)}
}

func (b *memoryBacking) Save(ctx context.Context, namespace string, entries []PersistedEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved[namespace] = entries
	b.saves++
	return nil
}

func (b *memoryBacking) Load(ctx context.Context, namespace string) ([]PersistedEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saved[namespace], nil
}

func TestCache_DurableBackingRoundTrip(t *testing.T) {
	backing := newMemoryBacking()

	c := New[string, []string](Config{
		Namespace:  "catalog",
		MaxSize:    10,
		DefaultTTL: time.Minute,
		Backing:    backing,
	})
	c.Put("categories", []string{"subs", "drinks"})

	if backing.saves != 1 {
		t.Fatalf("expected a durable write per mutation, got %d", backing.saves)
	}

	restored := New[string, []string](Config{
		Namespace:  "catalog",
		MaxSize:    10,
		DefaultTTL: time.Minute,
		Backing:    backing,
	})
	if err := restored.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got, ok := restored.Get("categories")
	if !ok || len(got) != 2 || got[0] != "subs" {
		t.Fatalf("unexpected restored value: %v (ok=%v)", got, ok)
	}
}

func TestCache_RestoreSkipsExpired(t *testing.T) {
	backing := newMemoryBacking()

	c := New[string, int](Config{Namespace: "n", MaxSize: 10, DefaultTTL: time.Minute, Backing: backing})
	c.PutWithTTL("stale", 1, 5*time.Millisecond)
	c.Put("fresh", 2)
	time.Sleep(10 * time.Millisecond)

	restored := New[string, int](Config{Namespace: "n", MaxSize: 10, DefaultTTL: time.Minute, Backing: backing})
	if err := restored.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if restored.Has("stale") {
		t.Fatal("expected stale entry to be dropped on restore")
	}
	if !restored.Has("fresh") {
		t.Fatal("expected fresh entry to be restored")
	}
}
