// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/foodlens/recipe-chat/internal/ai"
	"github.com/foodlens/recipe-chat/internal/config"
	"github.com/foodlens/recipe-chat/internal/domain"
	"github.com/foodlens/recipe-chat/internal/http/handlers"
	"github.com/foodlens/recipe-chat/internal/http/middleware"
	"github.com/foodlens/recipe-chat/internal/repo"
	"github.com/foodlens/recipe-chat/internal/services"
	"github.com/foodlens/recipe-chat/internal/uploads"
	"github.com/foodlens/recipe-chat/internal/web"
)

// chatRepoShim adapts the repository free functions to the services.ChatRepo
// interface expected by the RecipeService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type chatRepoShim struct{}

func (chatRepoShim) InsertChat(ctx context.Context, db *gorm.DB, foodName string, imageFilename *string, result string) (*domain.ChatRecord, error) {
	return repo.InsertChat(ctx, db, foodName, imageFilename, result)
}

func (chatRepoShim) GetChat(ctx context.Context, db *gorm.DB, id int64) (*domain.ChatRecord, error) {
	return repo.GetChat(ctx, db, id)
}

func (chatRepoShim) ListChats(ctx context.Context, db *gorm.DB) ([]domain.ChatRecord, error) {
	return repo.ListChats(ctx, db)
}

func (chatRepoShim) CountChats(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountChats(ctx, db)
}

func (chatRepoShim) ListChatsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ChatRecord, error) {
	return repo.ListChatsPage(ctx, db, offset, limit)
}

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine: the HTML pages, the static upload mount, health and metrics, and
// the JSON API under /api/v1.
//
// Middleware order matters:
//  1. OpenTelemetry (when enabled): trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter (bounded by the upload cap)
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, gw ai.Gateway, store *uploads.Store, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit; submissions carry an image upload, so the
	// cap follows the configured upload limit plus form overhead.
	r.Use(limitBody(cfg.MaxUploadBytes + (64 << 10)))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Page templates and uploaded images
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.Static("/uploads", store.Dir())

	// Dependency injection: service ← repo/db/gateway/store
	svc := services.NewRecipeService(db, chatRepoShim{}, gw, store)
	h := handlers.New(svc)

	// HTML pages
	r.GET("/", h.GetIndex)
	r.POST("/", h.PostSubmit)
	r.GET("/chat/:id", h.GetChatPage)
	r.GET("/history", h.GetHistory)

	// JSON API
	api := r.Group("/api/v1")
	{
		api.GET("/chats", h.ListChats)
		api.GET("/chats/:id", h.GetChat)
	}

	return nil
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
