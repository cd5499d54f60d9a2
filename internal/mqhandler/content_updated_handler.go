package mqhandler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"portfolio/contracts/mq"
	"portfolio/pkg/logger"
)

// Purger drops cached content.
type Purger interface {
	Purge(ctx context.Context) error
}

type ContentUpdatedHandler struct {
	purger Purger
	logger *zap.Logger
}

func NewContentUpdatedHandler(p Purger, logger *zap.Logger) *ContentUpdatedHandler {
	return &ContentUpdatedHandler{
		purger: p,
		logger: logger,
	}
}

// HandleContentUpdated -- 内容变更后清空缓存
func (h *ContentUpdatedHandler) HandleContentUpdated(ctx context.Context, raw json.RawMessage) error {
	log := logger.WithTrace(ctx, h.logger)

	var p mq.ContentUpdatedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error("Failed to unmarshal content updated payload", zap.Error(err))
		return err
	}

	log.Info("Content updated, purging cache",
		zap.Strings("kinds", p.Kinds),
		zap.String("source", p.Source),
		zap.Time("updated_at", p.UpdatedAt),
	)

	if err := h.purger.Purge(ctx); err != nil {
		log.Error("Failed to purge content cache", zap.Error(err))
		return err
	}
	return nil
}
