package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"portfolio/internal/config"
	"portfolio/pkg/circuitbreaker"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testMsg = Message{To: "owner@example.com", From: "site@example.com", Subject: "Contact from John", Text: "hi"}

func TestStub_FailsWithoutCredential(t *testing.T) {
	err := NewStub("", zap.NewNop()).Send(context.Background(), testMsg)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestStub_SucceedsWithCredential(t *testing.T) {
	assert.NoError(t, NewStub("key", zap.NewNop()).Send(context.Background(), testMsg))
}

func TestLog_NoDelay(t *testing.T) {
	assert.NoError(t, NewLog(zap.NewNop(), 0).Send(context.Background(), testMsg))
}

func TestLog_DelayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := NewLog(zap.NewNop(), time.Minute).Send(ctx, testMsg)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLog_DelayElapses(t *testing.T) {
	assert.NoError(t, NewLog(zap.NewNop(), 5*time.Millisecond).Send(context.Background(), testMsg))
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := config.Default()

	cfg.Mail.Provider = ProviderStub
	m, err := New(&cfg, zap.NewNop())
	require.NoError(t, err)
	assert.ErrorIs(t, m.Send(context.Background(), testMsg), ErrMissingCredential)

	cfg.Mail.Provider = ProviderLog
	m, err = New(&cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, m.Send(context.Background(), testMsg))

	cfg.Mail.Provider = "carrier-pigeon"
	_, err = New(&cfg, zap.NewNop())
	assert.Error(t, err)
}

type failingMailer struct{ calls int }

func (f *failingMailer) Send(context.Context, Message) error {
	f.calls++
	return errors.New("provider unavailable")
}

func TestWithBreaker_OpensOnRepeatedFailures(t *testing.T) {
	inner := &failingMailer{}
	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{FailureThreshold: 2, Timeout: time.Hour})
	m := WithBreaker(inner, cb)

	assert.Error(t, m.Send(context.Background(), testMsg))
	assert.Error(t, m.Send(context.Background(), testMsg))
	assert.ErrorIs(t, m.Send(context.Background(), testMsg), circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, 2, inner.calls)
}

func TestWithBreaker_MissingCredentialDoesNotTrip(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Config{FailureThreshold: 1, Timeout: time.Hour})
	m := WithBreaker(NewStub("", zap.NewNop()), cb)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, m.Send(context.Background(), testMsg), ErrMissingCredential)
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.GetState())
}
