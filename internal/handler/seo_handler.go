package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"portfolio/internal/content"
	"portfolio/internal/site"
)

type SEOHandler struct {
	baseURL string
}

func NewSEOHandler(baseURL string) *SEOHandler {
	return &SEOHandler{baseURL: baseURL}
}

// Sitemap handles GET /sitemap.xml
func (h *SEOHandler) Sitemap(c *gin.Context) {
	body, err := site.Sitemap(h.baseURL, content.Pages())
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// Robots handles GET /robots.txt
func (h *SEOHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, site.Robots(h.baseURL))
}
