// Package bootstrap opens the optional backing services named in config.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"portfolio/internal/config"
	"portfolio/internal/content"
	"portfolio/internal/db"
	"portfolio/internal/repository"
	pgdb "portfolio/pkg/db"
	"portfolio/pkg/outbox"
)

// ContentStore is a content.Store that may also be written and probed.
type ContentStore struct {
	content.Store
	Writer content.Writer // nil for the static driver
	Ping   func(ctx context.Context) error
	Close  func()

	// Outbox is set for postgres only; writes queue content.updated there.
	Outbox *outbox.Repository
}

// OpenContentStore opens the store selected by content.driver. source names
// the process in queued content.updated events.
func OpenContentStore(ctx context.Context, cfg *config.Config, source string, logger *zap.Logger) (*ContentStore, error) {
	switch cfg.Content.Driver {
	case "", config.ContentDriverStatic:
		return &ContentStore{Store: content.Static{}, Close: func() {}}, nil

	case config.ContentDriverSQLite:
		conn, err := db.OpenSQLite(cfg.Content.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite content store opened", zap.String("path", cfg.Content.SQLitePath))
		repo := repository.NewSQLiteContentRepo(conn)
		return &ContentStore{Store: repo, Writer: repo, Ping: repo.Ping, Close: func() { conn.Close() }}, nil

	case config.ContentDriverPostgres:
		pool, err := pgdb.NewConnection(ctx, cfg.DB, logger)
		if err != nil {
			return nil, err
		}
		if err := db.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		ob := outbox.NewRepository(pool)
		repo := repository.NewPostgresContentRepo(pool).WithOutbox(ob, source)
		return &ContentStore{Store: repo, Writer: repo, Ping: repo.Ping, Close: pool.Close, Outbox: ob}, nil

	default:
		return nil, fmt.Errorf("unknown content driver %q", cfg.Content.Driver)
	}
}
