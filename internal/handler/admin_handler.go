package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"portfolio/pkg/logger"
)

type AdminHandler struct {
	purger Purger
	logger *zap.Logger
}

func NewAdminHandler(purger Purger, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		purger: purger,
		logger: logger,
	}
}

// PurgeCache handles POST /api/admin/cache/purge
func (h *AdminHandler) PurgeCache(c *gin.Context) {
	log := logger.WithTrace(c.Request.Context(), h.logger)
	if err := h.purger.Purge(c.Request.Context()); err != nil {
		log.Error("Cache purge failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "purge failed"})
		return
	}

	log.Info("Cache purged by admin",
		zap.String("subject", c.GetString("subject")),
		zap.String("role", c.GetString("role")),
	)
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}

// WhoAmI handles GET /api/admin/whoami
func (h *AdminHandler) WhoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"subject": c.GetString("subject"),
		"role":    c.GetString("role"),
	})
}
