package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"portfolio/internal/contact"
	"portfolio/internal/model"
	"portfolio/internal/service/submission"
	"portfolio/pkg/logger"
)

type ContactHandler struct {
	submitter Submitter
	logger    *zap.Logger
}

func NewContactHandler(submitter Submitter, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		submitter: submitter,
		logger:    logger,
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var sub model.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, model.Rejected("invalid request", nil))
		return
	}

	ref, res, err := h.submitter.Submit(c.Request.Context(), sub)
	if ref != "" {
		c.Header(SubmissionIDHeader, ref)
	}

	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, model.Rejected(verr.Message, verr.Fields))
	case err != nil:
		logger.WithTrace(c.Request.Context(), h.logger).Error("Contact submission failed",
			zap.String("submission_id", ref),
			zap.Bool("configuration", errors.Is(err, contact.ErrConfiguration)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, model.Failed(submission.MsgFailed))
	default:
		c.JSON(http.StatusOK, res)
	}
}
