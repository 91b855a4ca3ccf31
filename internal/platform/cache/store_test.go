package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

type scopeKey struct {
	method string
	scope  string
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store := NewStore[scopeKey, string](time.Minute, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	key := scopeKey{method: "leaderboards", scope: "5.1"}

	store.Set(ctx, key, "cached")

	now = now.Add(59 * time.Second)
	if got, ok := store.Get(ctx, key); !ok || got != "cached" {
		t.Fatalf("expected cached value before ttl, got=%q ok=%v", got, ok)
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(ctx, key); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	store := NewStore[scopeKey, int](time.Minute)
	ctx := context.Background()

	store.Set(ctx, scopeKey{method: "a", scope: "1"}, 1)
	store.Set(ctx, scopeKey{method: "a", scope: "2"}, 2)

	if got, _ := store.Get(ctx, scopeKey{method: "a", scope: "1"}); got != 1 {
		t.Fatalf("unexpected value for key 1: %d", got)
	}
	if got, _ := store.Get(ctx, scopeKey{method: "a", scope: "2"}); got != 2 {
		t.Fatalf("unexpected value for key 2: %d", got)
	}
	if _, ok := store.Get(ctx, scopeKey{method: "b", scope: "1"}); ok {
		t.Fatalf("expected miss for unknown key")
	}

	store.Delete(ctx, scopeKey{method: "a", scope: "1"})
	if _, ok := store.Get(ctx, scopeKey{method: "a", scope: "1"}); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestStore_LastWriterWins(t *testing.T) {
	t.Parallel()

	store := NewStore[string, int](time.Minute)
	ctx := context.Background()

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(v int) {
			defer wg.Done()
			<-start
			if _, ok := store.Get(ctx, "same-key"); !ok {
				store.Set(ctx, "same-key", v)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if _, ok := store.Get(ctx, "same-key"); !ok {
		t.Fatalf("expected a value after concurrent sets")
	}
	if store.Len() != 1 {
		t.Fatalf("expected exactly one entry, got %d", store.Len())
	}
}
