package content

import (
	"context"

	"go.uber.org/zap"
	"portfolio/internal/cache"
	"portfolio/internal/content"
	"portfolio/internal/model"
	"portfolio/pkg/logger"
	"portfolio/pkg/metrics"
)

// Service reads content through the cache. When the configured store fails
// the static records are served instead, so pages never break on a CMS outage.
type Service struct {
	store    content.Store
	cache    cache.Cache
	fallback content.Store
	logger   *zap.Logger
}

func NewService(store content.Store, c cache.Cache, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		store:    store,
		cache:    c,
		fallback: content.Static{},
		logger:   logger,
	}
}

func (s *Service) Projects(ctx context.Context) ([]model.Project, error) {
	return load(ctx, s, cache.KindProjects, content.Store.Projects)
}

func (s *Service) Skills(ctx context.Context) ([]model.Skill, error) {
	return load(ctx, s, cache.KindSkills, content.Store.Skills)
}

func (s *Service) Achievements(ctx context.Context) ([]model.Achievement, error) {
	return load(ctx, s, cache.KindAchievements, content.Store.Achievements)
}

// Purge drops every cached list; the next read goes to the store.
func (s *Service) Purge(ctx context.Context) error {
	return s.cache.Purge(ctx)
}

func load[T any](ctx context.Context, s *Service, kind string, get func(content.Store, context.Context) ([]T, error)) ([]T, error) {
	log := logger.WithTrace(ctx, s.logger).With(zap.String("kind", kind))

	var cached []T
	hit, err := s.cache.Get(ctx, kind, &cached)
	if err != nil {
		log.Warn("Content cache read failed", zap.Error(err))
	}
	if hit {
		metrics.IncrementContentCache(kind, "hit")
		return cached, nil
	}
	metrics.IncrementContentCache(kind, "miss")

	items, err := get(s.store, ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("Content store read failed, serving static records", zap.Error(err))
		return get(s.fallback, ctx)
	}

	if err := s.cache.Set(ctx, kind, items); err != nil {
		log.Warn("Content cache write failed", zap.Error(err))
	}
	return items, nil
}
