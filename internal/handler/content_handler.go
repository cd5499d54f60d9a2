package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"portfolio/pkg/logger"
)

type ContentHandler struct {
	content ContentReader
	logger  *zap.Logger
}

func NewContentHandler(reader ContentReader, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		content: reader,
		logger:  logger,
	}
}

// Projects handles GET /api/content/projects
func (h *ContentHandler) Projects(c *gin.Context) {
	items, err := h.content.Projects(c.Request.Context())
	h.respond(c, items, err)
}

// Skills handles GET /api/content/skills
func (h *ContentHandler) Skills(c *gin.Context) {
	items, err := h.content.Skills(c.Request.Context())
	h.respond(c, items, err)
}

// Achievements handles GET /api/content/achievements
func (h *ContentHandler) Achievements(c *gin.Context) {
	items, err := h.content.Achievements(c.Request.Context())
	h.respond(c, items, err)
}

func (h *ContentHandler) respond(c *gin.Context, items any, err error) {
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("Failed to load content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load content"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
