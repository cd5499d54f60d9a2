package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"portfolio/internal/bootstrap"
	"portfolio/internal/cli"
	"portfolio/internal/config"
	"portfolio/internal/content"
	pkgconfig "portfolio/pkg/config"
	"portfolio/pkg/logger"
	"portfolio/pkg/mq"
	"portfolio/pkg/outbox"
)

const source = "portfolioctl"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFrom(pkgconfig.GetConfigEnv(), pkgconfig.GetEnv("CONFIG_DIR", "config"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.NewLogger(true)
	defer log.Sync()

	app := &cli.App{Config: cfg}

	if cfg.Content.Driver != "" && cfg.Content.Driver != config.ContentDriverStatic {
		app.OpenWriter = func(ctx context.Context) (content.Writer, func(), error) {
			store, err := bootstrap.OpenContentStore(ctx, cfg, source, log)
			if err != nil {
				return nil, nil, err
			}
			return store.Writer, store.Close, nil
		}
	}

	if cfg.MQ.URL != "" {
		pub := &lazyPublisher{url: cfg.MQ.URL, logger: log}
		defer pub.Close()
		app.Publisher = pub

		if cfg.Content.Driver == config.ContentDriverPostgres {
			app.OpenReplayer = func(ctx context.Context) (cli.Replayer, func(), error) {
				store, err := bootstrap.OpenContentStore(ctx, cfg, source, log)
				if err != nil {
					return nil, nil, err
				}
				return outbox.NewReplayService(store.Outbox, pub), store.Close, nil
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// lazyPublisher dials the broker on first use so commands that never publish
// do not need it.
type lazyPublisher struct {
	url    string
	logger *zap.Logger
	pub    *mq.Publisher
}

func (p *lazyPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	if p.pub == nil {
		pub, err := mq.NewPublisher(p.url)
		if err != nil {
			return err
		}
		p.logger.Debug("Connected to RabbitMQ", zap.String("exchange", mq.ExchangeName))
		p.pub = pub
	}
	return p.pub.Publish(ctx, routingKey, payload)
}

func (p *lazyPublisher) Close() {
	if p.pub != nil {
		p.pub.Close()
	}
}
