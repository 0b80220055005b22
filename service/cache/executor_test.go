package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/christopherkarani/blend-client/core"
)

func countingFetch(calls *int64, value interface{}) core.FetchFunc {
	return func(ctx context.Context) (interface{}, error) {
		atomic.AddInt64(calls, 1)
		return value, nil
	}
}

func TestNoCacheNeverTouchesStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(16)
	exec := NewExecutor(store, time.Minute)

	var calls int64
	for i := 0; i < 3; i++ {
		v, err := exec.Execute(ctx, "k", core.NoCache(), countingFetch(&calls, "fresh"))
		require.NoError(t, err)
		require.Equal(t, "fresh", v)
	}

	require.EqualValues(t, 3, calls)
	require.False(t, store.IsValid("k"))
}

func TestUseCacheFetchesOnceWithinTTL(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(NewStore(16), time.Minute)

	var calls int64
	policy := core.UseCache(300 * time.Second)

	for i := 0; i < 2; i++ {
		v, err := exec.Execute(ctx, "stats", policy, countingFetch(&calls, "snapshot"))
		require.NoError(t, err)
		require.Equal(t, "snapshot", v)
	}

	require.EqualValues(t, 1, calls)
}

func TestUseCacheRefetchesAfterExpiry(t *testing.T) {
	ctx := context.Background()
	exec := NewExecutor(NewStore(16), time.Minute)

	var calls int64
	policy := core.UseCache(40 * time.Millisecond)

	_, err := exec.Execute(ctx, "stats", policy, countingFetch(&calls, "v1"))
	require.NoError(t, err)
	_, err = exec.Execute(ctx, "stats", policy, countingFetch(&calls, "v1"))
	require.NoError(t, err)
	require.EqualValues(t, 1, calls)

	time.Sleep(80 * time.Millisecond)

	_, err = exec.Execute(ctx, "stats", policy, countingFetch(&calls, "v2"))
	require.NoError(t, err)
	require.EqualValues(t, 2, calls)
}

func TestUseCacheDefaultTTL(t *testing.T) {
	ctx := context.Background()
	store := NewStore(16)
	exec := NewExecutor(store, 40*time.Millisecond)

	var calls int64
	_, err := exec.Execute(ctx, "k", core.UseCache(0), countingFetch(&calls, "v"))
	require.NoError(t, err)
	require.True(t, store.IsValid("k"))

	time.Sleep(80 * time.Millisecond)
	require.False(t, store.IsValid("k"))
}

func TestRefreshCacheAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	store := NewStore(16)
	exec := NewExecutor(store, time.Minute)

	var calls int64
	_, err := exec.Execute(ctx, "k", core.UseCache(time.Minute), countingFetch(&calls, "old"))
	require.NoError(t, err)

	v, err := exec.Execute(ctx, "k", core.RefreshCache(), countingFetch(&calls, "new"))
	require.NoError(t, err)
	require.Equal(t, "new", v)
	require.EqualValues(t, 2, calls)

	// store reflects only the newest successful result
	got, ok := store.Get("k")
	require.True(t, ok)
	require.Equal(t, "new", got)
}

func TestFetchFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStore(16)
	exec := NewExecutor(store, time.Minute)

	store.Set("k", "stale-but-valid", time.Minute)

	boom := errors.New("rpc down")
	_, err := exec.Execute(ctx, "k", core.RefreshCache(), func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	// refresh removed the entry up front and the failed fetch never refilled it
	require.False(t, store.IsValid("k"))

	store.Set("k2", "valid", time.Minute)
	_, err = exec.Execute(ctx, "other", core.UseCache(time.Minute), func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.True(t, store.IsValid("k2"))
}

func TestCancelledFetchDoesNotWrite(t *testing.T) {
	store := NewStore(16)
	exec := NewExecutor(store, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())

	_, err := exec.Execute(ctx, "k", core.UseCache(time.Minute), func(ctx context.Context) (interface{}, error) {
		cancel()
		return "half-done", nil
	})
	require.Error(t, err)
	require.False(t, store.IsValid("k"))
}
