package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"portfolio/internal/handler"
	"portfolio/internal/site"
	"portfolio/pkg/otel"
	"portfolio/pkg/rbac"
)

// Pinger is a dependency checked by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain func to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Deps struct {
	Contact  *handler.ContactHandler
	Pages    *handler.PageHandler
	SEO      *handler.SEOHandler
	Content  *handler.ContentHandler
	Admin    *handler.AdminHandler // nil disables admin routes
	Renderer *site.Renderer
	// Ready maps a dependency name (db, redis, mq) to its probe.
	Ready     map[string]Pinger
	JWTSecret string
	Logger    *zap.Logger
}

type Router struct {
	Engine *gin.Engine
}

func NewRouter(d Deps) *Router {
	r := gin.New()
	r.HTMLRender = d.Renderer
	r.Use(gin.Recovery(), TraceMiddleware(), otel.GinMiddleware(), MetricsMiddleware(), LoggingMiddleware(d.Logger))

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/readyz", readyz(d.Ready))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages
	r.GET("/", d.Pages.Home)
	r.GET("/about", d.Pages.About)
	r.GET("/projects", d.Pages.Projects)
	r.GET("/skills", d.Pages.Skills)
	r.GET("/contact", d.Pages.Contact)
	r.POST("/contact", d.Pages.SubmitContact)
	r.GET("/sitemap.xml", d.SEO.Sitemap)
	r.GET("/robots.txt", d.SEO.Robots)
	r.NoRoute(d.Pages.NotFound)

	api := r.Group("/api")
	{
		api.POST("/contact", d.Contact.Submit)
		api.GET("/content/projects", d.Content.Projects)
		api.GET("/content/skills", d.Content.Skills)
		api.GET("/content/achievements", d.Content.Achievements)
	}

	if d.Admin != nil && d.JWTSecret != "" {
		admin := api.Group("/admin")
		admin.Use(AuthMiddleware(d.JWTSecret))
		{
			admin.GET("/whoami", RequirePermission(rbac.PermissionReadStatus), d.Admin.WhoAmI)
			admin.POST("/cache/purge", RequirePermission(rbac.PermissionPurgeCache), d.Admin.PurgeCache)
		}
	}

	return &Router{Engine: r}
}

func readyz(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		for name, p := range deps {
			if err := p.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": name + "_not_ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// Server wraps the engine in an http.Server so it can be shut down gracefully.
func (r *Router) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
