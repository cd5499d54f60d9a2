package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"portfolio/internal/contact"
	"portfolio/internal/content"
	"portfolio/internal/model"
	"portfolio/internal/site"
	"portfolio/pkg/logger"
)

type PageHandler struct {
	content   ContentReader
	submitter Submitter
	info      site.Info
	profile   model.Profile
	logger    *zap.Logger
}

func NewPageHandler(reader ContentReader, submitter Submitter, info site.Info, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		content:   reader,
		submitter: submitter,
		info:      info,
		profile:   content.DefaultProfile(info.Name, info.ContactEmail),
		logger:    logger,
	}
}

func (h *PageHandler) page(c *gin.Context, title string) site.Page {
	return site.Page{
		Title:   title,
		Path:    c.Request.URL.Path,
		Site:    h.info,
		Profile: h.profile,
		Nav:     content.NavLinks(),
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	p := h.page(c, "")
	ctx := c.Request.Context()

	var err error
	if p.Projects, err = h.content.Projects(ctx); err != nil {
		h.fail(c, err)
		return
	}
	if p.Skills, err = h.content.Skills(ctx); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, site.PageHome, p)
}

// About handles GET /about
func (h *PageHandler) About(c *gin.Context) {
	p := h.page(c, "About")
	var err error
	if p.Achievements, err = h.content.Achievements(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, site.PageAbout, p)
}

// Projects handles GET /projects
func (h *PageHandler) Projects(c *gin.Context) {
	p := h.page(c, "Projects")
	var err error
	if p.Projects, err = h.content.Projects(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, site.PageProjects, p)
}

// Skills handles GET /skills
func (h *PageHandler) Skills(c *gin.Context) {
	p := h.page(c, "Skills")
	var err error
	if p.Skills, err = h.content.Skills(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, site.PageSkills, p)
}

// Contact handles GET /contact
func (h *PageHandler) Contact(c *gin.Context) {
	p := h.page(c, "Contact")
	p.Form = site.NewContactForm()
	c.HTML(http.StatusOK, site.PageContact, p)
}

// SubmitContact handles POST /contact, the form-encoded path of /api/contact.
// Validation errors re-render the form with the submitted values.
func (h *PageHandler) SubmitContact(c *gin.Context) {
	p := h.page(c, "Contact")
	form := site.NewContactForm()
	p.Form = form

	var sub model.Submission
	if err := c.ShouldBind(&sub); err != nil {
		form.Status = "error"
		form.Banner = contact.ErrorBanner(h.info.ContactEmail)
		c.HTML(http.StatusBadRequest, site.PageContact, p)
		return
	}
	form.Values = sub

	// the page form is always the project brief
	if err := contact.ValidateExtended(sub); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			form.Errors = verr.Fields
		}
		c.HTML(http.StatusBadRequest, site.PageContact, p)
		return
	}

	ref, _, err := h.submitter.Submit(c.Request.Context(), sub)
	if ref != "" {
		c.Header(SubmissionIDHeader, ref)
	}
	if err != nil {
		logger.WithTrace(c.Request.Context(), h.logger).Error("Contact form error",
			zap.String("submission_id", ref),
			zap.Error(err),
		)
		form.Status = "error"
		form.Banner = contact.ErrorBanner(h.info.ContactEmail)
		c.HTML(http.StatusInternalServerError, site.PageContact, p)
		return
	}

	form.Values = model.Submission{}
	form.Status = "success"
	form.Banner = contact.SuccessBanner(h.info.ContactEmail)
	c.HTML(http.StatusOK, site.PageContact, p)
}

// NotFound renders the 404 page for unknown GET routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.HTML(http.StatusNotFound, site.PageNotFound, h.page(c, "Not found"))
}

func (h *PageHandler) fail(c *gin.Context, err error) {
	logger.WithTrace(c.Request.Context(), h.logger).Error("Failed to load page content",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.String(http.StatusInternalServerError, "internal error")
}
