package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cached content kinds. Each kind is stored under its own key.
const (
	KindProjects     = "projects"
	KindSkills       = "skills"
	KindAchievements = "achievements"
)

var kinds = []string{KindProjects, KindSkills, KindAchievements}

// Cache stores JSON snapshots of content lists.
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was present.
	Get(ctx context.Context, kind string, dst any) (bool, error)
	Set(ctx context.Context, kind string, value any) error
	Purge(ctx context.Context) error
}

func Key(kind string) string {
	return fmt.Sprintf("portfolio:content:%s", kind)
}

type ContentCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewContentCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ContentCache {
	return &ContentCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *ContentCache) Get(ctx context.Context, kind string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, Key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// 坏数据直接删掉，下次回源
		c.logger.Warn("Dropping undecodable cache entry", zap.String("kind", kind), zap.Error(err))
		_ = c.rdb.Del(ctx, Key(kind)).Err()
		return false, nil
	}
	return true, nil
}

func (c *ContentCache) Set(ctx context.Context, kind string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(kind), raw, c.ttl).Err()
}

func (c *ContentCache) Purge(ctx context.Context) error {
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		keys = append(keys, Key(k))
	}
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return err
	}
	c.logger.Info("Content cache purged", zap.Int64("keys_removed", n))
	return nil
}

// Ping is used by the readiness probe.
func (c *ContentCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Noop is used when Redis is not configured; every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error { return nil }
func (Noop) Purge(context.Context) error { return nil }
