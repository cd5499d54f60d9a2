package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
	"portfolio/pkg/logger"
)

// Log writes the message to the log and reports success. An optional delay
// simulates a provider round trip.
type Log struct {
	logger *zap.Logger
	delay  time.Duration
}

func NewLog(logger *zap.Logger, delay time.Duration) *Log {
	return &Log{logger: logger, delay: delay}
}

func (m *Log) Send(ctx context.Context, msg Message) (err error) {
	start := time.Now()
	defer func() { observe(ProviderLog, start, err) }()

	logger.WithTrace(ctx, m.logger).Info("New contact form submission",
		zap.String("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)

	if m.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
