// Package mailer sends the contact notification to the site owner.
//
// Neither implementation here talks to a real provider: Log only writes the
// message to the log, Stub additionally refuses to run without a credential.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"portfolio/internal/config"
	"portfolio/pkg/circuitbreaker"
	"portfolio/pkg/metrics"
)

const (
	ProviderLog  = "log"
	ProviderStub = "stub"
)

// ErrMissingCredential is returned by Stub when no API key is configured.
var ErrMissingCredential = errors.New("missing MAIL_API_KEY")

type Message struct {
	To      string
	From    string
	ReplyTo string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the mailer selected by mail.provider, wrapped in a circuit breaker.
func New(cfg *config.Config, logger *zap.Logger) (Mailer, error) {
	var m Mailer
	switch cfg.Mail.Provider {
	case "", ProviderLog:
		m = NewLog(logger, cfg.SimulatedMailDelay())
	case ProviderStub:
		m = NewStub(cfg.Mail.APIKey, logger)
	default:
		return nil, fmt.Errorf("unsupported mail provider: %s", cfg.Mail.Provider)
	}

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{
		Name:                "mailer",
		FailureThreshold:    cfg.Mail.BreakerThreshold,
		SuccessThreshold:    1,
		Timeout:             cfg.BreakerTimeout(),
		HalfOpenMaxRequests: 1,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return WithBreaker(m, cb), nil
}

type breakerMailer struct {
	next Mailer
	cb   *circuitbreaker.CircuitBreaker
}

// WithBreaker fails fast with circuitbreaker.ErrCircuitBreakerOpen once the
// wrapped mailer keeps failing. A missing credential does not trip it.
func WithBreaker(m Mailer, cb *circuitbreaker.CircuitBreaker) Mailer {
	return &breakerMailer{next: m, cb: cb}
}

func (b *breakerMailer) Send(ctx context.Context, msg Message) error {
	var credErr error
	err := b.cb.ExecuteContext(ctx, func(ctx context.Context) error {
		err := b.next.Send(ctx, msg)
		if errors.Is(err, ErrMissingCredential) {
			credErr = err
			return nil
		}
		return err
	})
	if credErr != nil {
		return credErr
	}
	return err
}

func observe(provider string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	metrics.RecordMailSend(provider, status, time.Since(start))
}
