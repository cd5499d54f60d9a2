package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*ContentCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewContentCache(rdb, ttl, zap.NewNop()), mr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "portfolio:content:projects", Key(KindProjects))
	assert.Equal(t, "portfolio:content:skills", Key(KindSkills))
}

func TestContentCache_SetGet(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()

	var got []string
	hit, err := c.Get(ctx, KindSkills, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, KindSkills, []string{"Go", "Postgres"}))
	assert.Equal(t, time.Minute, mr.TTL(Key(KindSkills)))

	hit, err = c.Get(ctx, KindSkills, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"Go", "Postgres"}, got)

	mr.FastForward(time.Minute + time.Second)
	got = nil
	hit, err = c.Get(ctx, KindSkills, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestContentCache_UndecodableEntryIsDropped(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	require.NoError(t, mr.Set(Key(KindProjects), "{not json"))

	var got []string
	hit, err := c.Get(context.Background(), KindProjects, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, mr.Exists(Key(KindProjects)))
}

func TestContentCache_Purge(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()
	for _, k := range kinds {
		require.NoError(t, c.Set(ctx, k, []string{k}))
	}
	require.NoError(t, mr.Set("portfolio:retry:content.updated:m-1", "1"))

	require.NoError(t, c.Purge(ctx))

	for _, k := range kinds {
		assert.False(t, mr.Exists(Key(k)), k)
	}
	assert.True(t, mr.Exists("portfolio:retry:content.updated:m-1"))
	assert.NoError(t, c.Purge(ctx))
}

func TestContentCache_Ping(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestContentCache_GetErrorWhenRedisDown(t *testing.T) {
	c, mr := newRedisCache(t, time.Minute)
	mr.Close()

	var got []string
	hit, err := c.Get(context.Background(), KindProjects, &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, KindProjects, []string{"a"}))

	var got []string
	hit, err := c.Get(ctx, KindProjects, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
	assert.NoError(t, c.Purge(ctx))
}
