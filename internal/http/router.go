// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, and rate limiting.
//
// The route table intentionally keeps the Portuguese paths and payload
// fields of the legacy Node service: the WhatsApp automation flow calling
// this API was built against them and knows nothing else.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/config"
	"github.com/tbourn/go-whatsapp-backoffice/internal/http/handlers"
	"github.com/tbourn/go-whatsapp-backoffice/internal/http/middleware"
	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability (tracing, metrics), rate limiting, CORS and security
// headers, the public endpoints (health, login, admin page), and the
// token-protected API under /api.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs (credentials reduced to a flag)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, st *store.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB); largest legitimate body is a
	// config update with a multi-paragraph base prompt.
	r.Use(limitBody(1 << 20))

	// 6) Compress responses; the registry and history payloads are
	// repetitive JSON and shrink well.
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (allow all when none configured; the admin page is
	// served same-origin, the flow is a server-side client)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
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

	// Fallbacks keep the legacy `{erro}` wire shape.
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.MsgRouteNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.MsgMethodBlocked)
	})

	// Dependency injection: services ← store
	catalogSvc := services.NewCatalogService(st)
	registrySvc := services.NewRegistryService(st)
	historySvc := services.NewHistoryService(st)
	promptSvc := services.NewPromptService(st, cfg.PromptFile)
	configSvc := services.NewConfigService(st)

	h := handlers.New(catalogSvc, registrySvc, historySvc, promptSvc, configSvc, cfg.AdminPassword)

	// Public surface
	r.GET("/health", h.Health)
	r.POST("/api/login", h.Login)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/admin")
	})
	r.Static("/admin", cfg.StaticDir)

	// Token-protected API
	api := r.Group("/api", middleware.BearerAuth(cfg.AdminPassword))
	{
		// Catalog
		api.GET("/produtos", h.ListProducts)
		api.POST("/produtos", h.CreateProduct)
		api.GET("/produtos/:id", h.GetProduct)
		api.PUT("/produtos/:id", h.UpdateProduct)
		api.DELETE("/produtos/:id", h.DeleteProduct)

		// Registry
		api.GET("/usuarios", h.ListUsers)
		api.DELETE("/usuarios", h.ClearUsers)
		api.GET("/usuarios/:numero", h.GetOrCreateUser)
		api.PUT("/usuarios/:numero", h.UpdateUser)
		api.DELETE("/usuarios/:numero", h.DeleteUser)

		// Conversation history
		api.GET("/usuarios/:numero/historico", h.GetHistory)
		api.POST("/usuarios/:numero/historico", h.AppendMessage)
		api.DELETE("/usuarios/:numero/historico", h.ClearHistory)

		// Gatekeeping probes
		api.GET("/usuarios/:numero/pode-responder", h.CanRespond)
		api.GET("/pausados/:numero", h.LegacyPaused)

		// Configuration
		api.GET("/config", h.GetConfig)
		api.PUT("/config", h.UpdateConfig)

		// Prompt payload assembly
		api.POST("/build-ai-payload", h.BuildPayload)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the
// cap will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
