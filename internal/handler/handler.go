package handler

import (
	"context"

	"portfolio/internal/model"
)

// Submitter runs one contact submission.
type Submitter interface {
	Submit(ctx context.Context, sub model.Submission) (string, *model.SubmissionResult, error)
}

// ContentReader loads the read-only site content.
type ContentReader interface {
	Projects(ctx context.Context) ([]model.Project, error)
	Skills(ctx context.Context) ([]model.Skill, error)
	Achievements(ctx context.Context) ([]model.Achievement, error)
}

// Purger drops cached content.
type Purger interface {
	Purge(ctx context.Context) error
}

const SubmissionIDHeader = "X-Submission-ID"
