package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"portfolio/internal/contact"
	"portfolio/internal/mailer"
	"portfolio/internal/model"
	"portfolio/pkg/logger"
	"portfolio/pkg/metrics"
)

const (
	MsgReceived = "Message received! I will contact you within 24 hours."
	MsgFailed   = "Failed to send message"
)

type Service struct {
	mailer mailer.Mailer
	owner  string
	from   string
	logger *zap.Logger
}

// NewService wires the mailer; owner receives every notification and from is
// the sender address.
func NewService(m mailer.Mailer, owner, from string, logger *zap.Logger) *Service {
	return &Service{
		mailer: m,
		owner:  owner,
		from:   from,
		logger: logger,
	}
}

// Submit validates one submission and performs its side effect. Nothing is
// stored, queued or retried; submitting twice notifies twice.
//
// Errors: *contact.ValidationError for bad input, contact.ErrConfiguration
// when the mail credential is missing, contact.ErrDelivery otherwise.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (string, *model.SubmissionResult, error) {
	sub = sub.Trimmed()
	variant := string(sub.Variant())
	log := logger.WithTrace(ctx, s.logger)

	if err := contact.Check(sub); err != nil {
		metrics.IncrementContactSubmission(variant, "invalid")
		log.Info("Rejected contact submission", zap.String("variant", variant), zap.Error(err))
		return "", nil, err
	}

	ref := uuid.NewString()
	log = log.With(zap.String("submission_id", ref), zap.String("variant", variant))
	log.Info("Received contact submission",
		zap.String("name", sub.Name),
		zap.String("email", sub.Email),
		zap.String("project_type", string(sub.ProjectType)),
		zap.String("budget", string(sub.Budget)),
		zap.String("timeline", string(sub.Timeline)),
	)

	msg := mailer.Message{
		To:      s.owner,
		From:    s.from,
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("Contact from %s", displayName(sub)),
		Text:    sub.Body(),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.IncrementContactSubmission(variant, "failed")
		log.Error("Contact form error", zap.Error(err))
		if errors.Is(err, mailer.ErrMissingCredential) {
			return ref, nil, fmt.Errorf("%w: %w", contact.ErrConfiguration, err)
		}
		return ref, nil, fmt.Errorf("%w: %w", contact.ErrDelivery, err)
	}

	metrics.IncrementContactSubmission(variant, "success")
	return ref, model.Succeeded(MsgReceived), nil
}

func displayName(sub model.Submission) string {
	if sub.Name != "" {
		return sub.Name
	}
	return sub.Email
}
