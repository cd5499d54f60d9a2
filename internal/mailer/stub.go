package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
	"portfolio/pkg/logger"
)

// Stub stands in for a SendGrid/SMTP integration: it checks that the
// credential is configured and otherwise succeeds without delivering.
type Stub struct {
	apiKey string
	logger *zap.Logger
}

func NewStub(apiKey string, logger *zap.Logger) *Stub {
	return &Stub{apiKey: apiKey, logger: logger}
}

func (m *Stub) Send(ctx context.Context, msg Message) (err error) {
	start := time.Now()
	defer func() { observe(ProviderStub, start, err) }()

	if m.apiKey == "" {
		return ErrMissingCredential
	}

	// TODO: call the provider API once a SendGrid account is set up
	logger.WithTrace(ctx, m.logger).Info("Sending email notification",
		zap.String("to", msg.To),
		zap.String("from", msg.From),
		zap.String("subject", msg.Subject),
	)
	return nil
}
