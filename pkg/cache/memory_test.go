package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, mc.Set(ctx, "k", payload{Name: "a", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var dest string
	err := mc.Get(context.Background(), "absent", &dest)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiration(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var dest string
	err := mc.Get(ctx, "k", &dest)
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, mc.Delete(ctx, "a", "b"))

	var dest int
	require.ErrorIs(t, mc.Get(ctx, "a", &dest), ErrCacheMiss)
	require.ErrorIs(t, mc.Get(ctx, "b", &dest), ErrCacheMiss)
}

func TestMemoryCacheExists(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Minute))

	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.Exists(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(3))
	defer mc.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, mc.Set(ctx, fmt.Sprintf("k%d", i), i, time.Minute))
		time.Sleep(time.Millisecond)
	}

	// Touch k0 so k1 becomes the oldest
	var dest int
	require.NoError(t, mc.Get(ctx, "k0", &dest))
	time.Sleep(time.Millisecond)

	require.NoError(t, mc.Set(ctx, "k3", 3, time.Minute))

	require.ErrorIs(t, mc.Get(ctx, "k1", &dest), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "k0", &dest))
	require.NoError(t, mc.Get(ctx, "k3", &dest))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "series:AAPL:5min", Key("series", "AAPL", "5min"))
	assert.Equal(t, "github:repos:octocat:5", Key("github", "repos", "octocat", 5))
	assert.Equal(t, "plain", Key("plain"))
}
