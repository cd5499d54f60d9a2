package util

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T) (*RetryCounter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRetryCounter(rdb, time.Hour), mr
}

func TestFormatRetryKey(t *testing.T) {
	assert.Equal(t, "portfolio:retry:content.updated:m-1", FormatRetryKey("content.updated", "m-1"))
}

func TestRetryCounter_IncrementSetsTTLOnce(t *testing.T) {
	rc, mr := newTestCounter(t)
	ctx := context.Background()
	key := FormatRetryKey("content.updated", "m-1")

	n, err := rc.IncrementAndGet(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(10 * time.Minute)
	n, err = rc.IncrementAndGet(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 50*time.Minute, mr.TTL(key))

	mr.FastForward(time.Hour)
	assert.False(t, mr.Exists(key))
}

func TestRetryCounter_Reset(t *testing.T) {
	rc, mr := newTestCounter(t)
	ctx := context.Background()
	key := FormatRetryKey("content.updated", "m-2")

	for i := 0; i < 3; i++ {
		_, err := rc.IncrementAndGet(ctx, key)
		require.NoError(t, err)
	}
	require.NoError(t, rc.Reset(ctx, key))
	assert.False(t, mr.Exists(key))

	n, err := rc.IncrementAndGet(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRetryCounter_RedisDown(t *testing.T) {
	rc, mr := newTestCounter(t)
	mr.Close()

	_, err := rc.IncrementAndGet(context.Background(), "portfolio:retry:x:y")
	assert.Error(t, err)
}
