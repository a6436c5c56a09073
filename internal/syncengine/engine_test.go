package syncengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Get_FetchesOnceThenCaches(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	ctx := context.Background()

	fetches := 0
	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		fetches++
		return []byte(`["a"]`), nil
	})

	for i := 0; i < 3; i++ {
		value, err := engine.Get(ctx, "list")
		require.NoError(t, err)
		assert.Equal(t, []byte(`["a"]`), value)
	}

	assert.Equal(t, 1, fetches)
}

func TestEngine_Get_UnregisteredKey(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)

	_, err := engine.Get(context.Background(), "unknown")

	assert.Error(t, err)
}

func TestEngine_Get_FetchErrorSurfaces(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("backend down")
	})

	_, err := engine.Get(context.Background(), "list")

	assert.Error(t, err)
}

func TestEngine_Invalidate_RefetchesImmediately(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	ctx := context.Background()

	payload := []byte(`["a"]`)
	fetches := 0
	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		fetches++
		return payload, nil
	})

	value, err := engine.Get(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a"]`), value)

	payload = []byte(`["a","b"]`)
	engine.Invalidate(ctx, "list")

	// The refetch happened inside Invalidate; Get serves the new
	// payload from cache without another fetch.
	value, err = engine.Get(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a","b"]`), value)
	assert.Equal(t, 2, fetches)
}

func TestEngine_Invalidate_FailedRefetchLeavesKeyEmpty(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	ctx := context.Background()

	failing := false
	fetches := 0
	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		fetches++
		if failing {
			return nil, errors.New("backend down")
		}
		return []byte(`[]`), nil
	})

	_, err := engine.Get(ctx, "list")
	require.NoError(t, err)

	failing = true
	engine.Invalidate(ctx, "list")

	// Next read fetches again rather than serving stale data
	failing = false
	_, err = engine.Get(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, 3, fetches)
}

func TestEngine_Mutate_SuccessInvalidates(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	ctx := context.Background()

	fetches := 0
	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		fetches++
		return []byte(`[]`), nil
	})

	_, err := engine.Get(ctx, "list")
	require.NoError(t, err)

	err = engine.Mutate(ctx, "list", func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, fetches)
}

func TestEngine_Mutate_FailureKeepsCache(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	ctx := context.Background()

	fetches := 0
	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		fetches++
		return []byte(`["a"]`), nil
	})

	_, err := engine.Get(ctx, "list")
	require.NoError(t, err)

	err = engine.Mutate(ctx, "list", func(ctx context.Context) error {
		return errors.New("create rejected")
	})
	assert.Error(t, err)

	// No invalidation happened; the cached view is unchanged
	value, err := engine.Get(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a"]`), value)
	assert.Equal(t, 1, fetches)
}

func TestEngine_Deregister_DropsCache(t *testing.T) {
	engine := New(NewMemoryCache(), time.Minute)
	ctx := context.Background()

	engine.Register("list", func(ctx context.Context) ([]byte, error) {
		return []byte(`["a"]`), nil
	})
	_, err := engine.Get(ctx, "list")
	require.NoError(t, err)

	engine.Deregister(ctx, "list")

	_, err = engine.Get(ctx, "list")
	assert.Error(t, err)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	err := cache.Set(ctx, "k", []byte("v"), time.Millisecond)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	err := cache.Set(ctx, "k", []byte("v"), 0)
	require.NoError(t, err)

	value, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}
