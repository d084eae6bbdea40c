package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisPageCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisPageCache(rdb, ttl), mr
}

func TestPageCacheMissThenHit(t *testing.T) {
	c, _ := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "products:page:/api/products-cached/?page=1")
	require.NoError(t, err)
	assert.False(t, ok)

	body := []byte(`{"count":1,"results":[]}`)
	require.NoError(t, c.Set(ctx, "products:page:/api/products-cached/?page=1", body))

	got, ok, err := c.Get(ctx, "products:page:/api/products-cached/?page=1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestPageCacheEntriesAgeOut(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	mr.FastForward(29 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "entry must survive inside the TTL window")

	mr.FastForward(2 * time.Second)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry must age out after the TTL")
}

func TestPageCacheKeysAreIndependent(t *testing.T) {
	c, _ := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "products:page:/a?page=1", []byte("one")))
	require.NoError(t, c.Set(ctx, "products:page:/a?page=2", []byte("two")))

	got, ok, err := c.Get(ctx, "products:page:/a?page=2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("two"), got)
}
