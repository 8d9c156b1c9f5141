// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, rate limiting, and the admin gate on
// destructive contact routes.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/ebubekeyz/ebube.dev-backend/docs"
	"github.com/ebubekeyz/ebube.dev-backend/internal/config"
	"github.com/ebubekeyz/ebube.dev-backend/internal/domain"
	"github.com/ebubekeyz/ebube.dev-backend/internal/http/handlers"
	"github.com/ebubekeyz/ebube.dev-backend/internal/http/middleware"
	"github.com/ebubekeyz/ebube.dev-backend/internal/mail"
	"github.com/ebubekeyz/ebube.dev-backend/internal/repo"
	"github.com/ebubekeyz/ebube.dev-backend/internal/services"
)

// contactRepoShim adapts the repository free functions to the
// services.ContactRepo interface expected by the ContactService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type contactRepoShim struct{}

// CreateContact proxies repo.CreateContact.
func (contactRepoShim) CreateContact(ctx context.Context, db *gorm.DB, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	return repo.CreateContact(ctx, db, m)
}

// CountContacts proxies repo.CountContacts (pagination support).
func (contactRepoShim) CountContacts(ctx context.Context, db *gorm.DB, f repo.ContactFilter) (int64, error) {
	return repo.CountContacts(ctx, db, f)
}

// ListContactsPage proxies repo.ListContactsPage (pagination support).
func (contactRepoShim) ListContactsPage(ctx context.Context, db *gorm.DB, f repo.ContactFilter, sort string, offset, limit int) ([]domain.ContactMessage, error) {
	return repo.ListContactsPage(ctx, db, f, sort, offset, limit)
}

// GetContact proxies repo.GetContact.
func (contactRepoShim) GetContact(ctx context.Context, db *gorm.DB, id string) (*domain.ContactMessage, error) {
	return repo.GetContact(ctx, db, id)
}

// UpdateContact proxies repo.UpdateContact.
func (contactRepoShim) UpdateContact(ctx context.Context, db *gorm.DB, id string, patch map[string]any) (*domain.ContactMessage, error) {
	return repo.UpdateContact(ctx, db, id, patch)
}

// UpdateContactsByUser proxies repo.UpdateContactsByUser.
func (contactRepoShim) UpdateContactsByUser(ctx context.Context, db *gorm.DB, userID string, patch map[string]any) (matched, modified int64, err error) {
	return repo.UpdateContactsByUser(ctx, db, userID, patch)
}

// DeleteContact proxies repo.DeleteContact.
func (contactRepoShim) DeleteContact(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteContact(ctx, db, id)
}

// DeleteContactsByUser proxies repo.DeleteContactsByUser.
func (contactRepoShim) DeleteContactsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.DeleteContactsByUser(ctx, db, userID)
}

// DeleteAllContacts proxies repo.DeleteAllContacts.
func (contactRepoShim) DeleteAllContacts(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.DeleteAllContacts(ctx, db)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression for responses
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and Security headers
//
// The dispatcher may be nil, in which case contact submissions are accepted
// without sending the transactional emails.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, dispatcher *mail.Dispatcher) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (contact submissions carry PII)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-Admin-Token",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress responses (list pages are JSON and compress well)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Token"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Token"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
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

	// Swagger UI (opt-in via SWAGGER_ENABLED)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: service ← repo/db/mail
	svc := services.NewContactService(db, contactRepoShim{}, dispatcher)
	h := handlers.New(svc)

	// Admin gate for destructive bulk routes
	admin := middleware.RequireAdminToken(cfg.AdminToken)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Contact submissions
		api.POST("/contacts", h.CreateContact)
		api.GET("/contacts", h.ListContacts)
		api.DELETE("/contacts", admin, h.DeleteAllContacts)

		// Single contact administration
		api.GET("/contacts/:id", h.GetContact)
		api.PATCH("/contacts/:id", h.UpdateContact)
		api.DELETE("/contacts/:id", h.DeleteContact)

		// Per-submitter bulk administration
		api.PATCH("/contacts/user/:id", admin, h.UpdateUserContacts)
		api.DELETE("/contacts/user/:id", admin, h.DeleteUserContacts)
	}
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

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
