package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CoalescesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var loads atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) (string, error) {
		loads.Add(1)
		<-release
		return "fingerprint", nil
	}

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "game-1", load)
			if err != nil {
				results <- "error: " + err.Error()
				return
			}
			results <- v
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for got := range results {
		if got != "fingerprint" {
			t.Fatalf("unexpected result %q", got)
		}
	}
	if n := loads.Load(); n != 1 {
		t.Fatalf("loader ran %d times, want 1", n)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	boom := errors.New("boom")
	calls := 0

	_, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		calls++
		return 7, nil
	})
	if err != nil || v != 7 {
		t.Fatalf("second load = %d, %v", v, err)
	}
	if calls != 2 {
		t.Fatalf("expected two loader calls, got %d", calls)
	}

	if _, err := store.GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatalf("expected error for nil loader")
	}
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "a", "1")
	store.Set(ctx, "b", "2")
	store.Set(ctx, "", "ignored")
	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}

	now = now.Add(59 * time.Second)
	if v, ok := store.Get(ctx, "a"); !ok || v != "1" {
		t.Fatalf("entry expired early: %q %v", v, ok)
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatalf("entry should expire at ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected no live entries, got %d", store.Len())
	}
}

func TestStore_ZeroTTLAndDelete(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	store.now = func() time.Time { return time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatalf("zero ttl entries must not expire")
	}
	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("deleted entry still present")
	}
}
