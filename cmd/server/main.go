package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	mqcontracts "portfolio/contracts/mq"
	"portfolio/internal/bootstrap"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/httpserver"
	"portfolio/internal/mailer"
	"portfolio/internal/mqhandler"
	contentsvc "portfolio/internal/service/content"
	"portfolio/internal/service/submission"
	"portfolio/internal/site"
	pkgconfig "portfolio/pkg/config"
	"portfolio/pkg/logger"
	"portfolio/pkg/mq"
	"portfolio/pkg/otel"
	"portfolio/pkg/outbox"
	pkgredis "portfolio/pkg/redis"
	"portfolio/pkg/util"
)

const (
	contentUpdatedQueue = "portfolio.content.updated.q"
	maxDeliveryRetries  = 5
)

func main() {
	// 1. Load config
	cfg := config.Load()

	log := logger.NewLogger(pkgconfig.GetConfigEnv() == "local")
	defer log.Sync()

	if pkgconfig.GetConfigEnv() != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Init OpenTelemetry
	shutdownOtel, err := otel.Init(otel.Config{
		ServiceName: cfg.Otel.ServiceName,
		Endpoint:    cfg.Otel.Endpoint,
		Enabled:     cfg.Otel.Enabled,
	}, log)
	if err != nil {
		log.Fatal("OpenTelemetry initialization failed", zap.Error(err))
	}
	defer shutdownOtel()

	ready := map[string]httpserver.Pinger{}

	// 3. Content store
	store, err := bootstrap.OpenContentStore(ctx, cfg, cfg.Otel.ServiceName, log)
	if err != nil {
		log.Fatal("Content store initialization failed", zap.Error(err))
	}
	defer store.Close()
	if store.Ping != nil {
		ready["db"] = httpserver.PingFunc(store.Ping)
	}

	// 4. Redis cache (可选)
	var contentCache cache.Cache = cache.Noop{}
	var retries *util.RetryCounter
	if cfg.Redis.Addr != "" {
		rdb, err := pkgredis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Redis initialization failed", zap.Error(err))
		}
		defer rdb.Close()
		cc := cache.NewContentCache(rdb, cfg.CacheTTL(), log)
		ready["redis"] = cc
		contentCache = cc
		retries = util.NewRetryCounter(rdb, time.Hour)
	}

	// 5. Services
	contentService := contentsvc.NewService(store, contentCache, log)
	m, err := mailer.New(cfg, log)
	if err != nil {
		log.Fatal("Mailer initialization failed", zap.Error(err))
	}
	submissionService := submission.NewService(m, cfg.Site.ContactEmail, cfg.Mail.From, log)

	// 6. RabbitMQ consumer for content.updated (可选)
	var consumer *mq.Consumer
	if cfg.MQ.URL != "" {
		consumer, err = mq.NewConsumer(cfg.MQ.URL, contentUpdatedQueue, mqcontracts.RoutingContentUpdated, log)
		if err != nil {
			log.Fatal("Consumer initialization failed", zap.Error(err))
		}
		defer consumer.Close()
		consumer.SetHandler(mqhandler.NewContentUpdatedHandler(contentService, log).HandleContentUpdated)
		if retries != nil {
			consumer.WithRetryLimit(retries, maxDeliveryRetries)
		}
		ready["mq"] = consumer
	}

	// 7. Outbox dispatcher: postgres 写入的 content.updated 由这里发布
	var dispatcher *outbox.Dispatcher
	if cfg.MQ.URL != "" && store.Outbox != nil {
		publisher, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("Publisher initialization failed", zap.Error(err))
		}
		defer publisher.Close()
		dispatcher = outbox.NewDispatcher(store.Outbox, publisher, log)
	}

	// 8. HTTP
	renderer, err := site.NewRenderer()
	if err != nil {
		log.Fatal("Template parsing failed", zap.Error(err))
	}
	info := site.Info{
		Name:         cfg.Site.Name,
		URL:          cfg.Site.URL,
		AnalyticsID:  cfg.Site.AnalyticsID,
		ContactEmail: cfg.Site.ContactEmail,
	}

	var admin *handler.AdminHandler
	if cfg.Admin.JWTSecret != "" {
		admin = handler.NewAdminHandler(contentService, log)
	}

	router := httpserver.NewRouter(httpserver.Deps{
		Contact:   handler.NewContactHandler(submissionService, log),
		Pages:     handler.NewPageHandler(contentService, submissionService, info, log),
		SEO:       handler.NewSEOHandler(cfg.Site.URL),
		Content:   handler.NewContentHandler(contentService, log),
		Admin:     admin,
		Renderer:  renderer,
		Ready:     ready,
		JWTSecret: cfg.Admin.JWTSecret,
		Logger:    log,
	})
	srv := router.Server(cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Portfolio server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if consumer != nil {
		g.Go(func() error {
			return consumer.StartConsuming(gctx)
		})
	}
	if dispatcher != nil {
		g.Go(func() error {
			return dispatcher.Start(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		stop()
		os.Exit(1)
	}
	log.Info("Server exited")
}
