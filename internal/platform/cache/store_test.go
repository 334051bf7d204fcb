package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[[]int](time.Minute)
	var loads atomic.Int32
	loader := func(context.Context) ([]int, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []int{1, 4, 7}, nil
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "species", loader)
			assert.NoError(t, err)
			assert.Len(t, v, 3)
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), loads.Load())
}

func TestStore_FailedLoadsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	ctx := context.Background()
	down := errors.New("db down")

	_, err := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) { return "", down })
	require.ErrorIs(t, err, down)

	var loads int
	for range 2 {
		v, err := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) {
			loads++
			return "cached", nil
		})
		require.NoError(t, err)
		require.Equal(t, "cached", v)
	}
	require.Equal(t, 1, loads)
}

func TestStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "items", 3)
	v, ok := store.Get(ctx, "items")
	require.True(t, ok)
	require.Equal(t, 3, v)

	now = now.Add(time.Minute)
	_, ok = store.Get(ctx, "items")
	require.False(t, ok)
}

func TestStore_ZeroTTLKeepsEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	store.clock = func() time.Time { return time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC) }
	store.Set(context.Background(), "k", 1)
	_, ok := store.Get(context.Background(), "k")
	require.True(t, ok)

	store.Set(context.Background(), "", 2)
	_, ok = store.Get(context.Background(), "")
	require.False(t, ok)
}

func TestStore_DeletePrefixSpansShards(t *testing.T) {
	t.Parallel()

	store := NewStore[int](0)
	ctx := context.Background()
	for i := range 64 {
		store.Set(ctx, fmt.Sprintf("pokedex:%d", i), i)
	}
	store.Set(ctx, "stats", 1)

	store.DeletePrefix(ctx, "pokedex:")
	store.DeletePrefix(ctx, "")

	for i := range 64 {
		_, ok := store.Get(ctx, fmt.Sprintf("pokedex:%d", i))
		require.False(t, ok, i)
	}
	_, ok := store.Get(ctx, "stats")
	require.True(t, ok)
}
