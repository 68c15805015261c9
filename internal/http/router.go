// Package httpapi builds the Gin engine: the middleware chain, the public
// image, teammate and analytics API, health and metrics endpoints, Swagger
// docs and the static route for locally stored images.
//
// Generation routes sit behind a second, per-route limiter because every
// call spends provider credit.
package httpapi

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/teammate-generator/docs"
	"github.com/tbourn/teammate-generator/internal/config"
	"github.com/tbourn/teammate-generator/internal/http/handlers"
	"github.com/tbourn/teammate-generator/internal/http/middleware"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/services"
)

// maxBodyBytes caps request bodies. The largest legitimate body is a
// teammate profile of a few KiB.
const maxBodyBytes = 1 << 20

// Services is the application layer built once at startup.
type Services struct {
	Images    *services.GenerationService
	Teammates *services.TeammateService
	Analytics *services.AnalyticsService
}

// NewServices builds the services over db and the provider registry.
func NewServices(db *gorm.DB, reg *providers.Registry, traits *prompt.Generator, cfg config.Config) Services {
	images := &services.GenerationService{
		DB:       db,
		Registry: reg,
		Traits:   traits,
		Timeout:  cfg.Providers.Timeout,
	}
	return Services{
		Images: images,
		Teammates: &services.TeammateService{
			DB:             db,
			Images:         images,
			IdempotencyTTL: cfg.IdempotencyTTL,
		},
		Analytics: services.NewAnalyticsService(db,
			cfg.Analytics.SessionTimeout,
			cfg.Analytics.CleanupAge,
			cfg.Analytics.StatsCacheTTL,
		),
	}
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. Health, metrics, docs and generated images live at the root; the
// public API is mounted under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per IP, bypass on replay)
//  9. CORS
//  10. Compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, svc Services, cfg config.Config) {
	r.HandleMethodNotAllowed = true
	imagesPrefix := cfg.Storage.URLPrefix
	if imagesPrefix == "" || imagesPrefix == "/" {
		imagesPrefix = "/generated"
	}

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.Logger(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	r.Use(limitBody(maxBodyBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics(middleware.MetricsOptions{
		SkipPrefixes: []string{"/metrics", imagesPrefix},
	}))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		svc.Teammates.HasReplay,
	))

	// 8) Token-bucket rate limiter per IP
	if cfg.RateRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP()).Handler())
	}

	// 9) CORS posture (allow all if none configured)
	r.Use(corsMiddleware(cfg.CORS)...)

	// 10) Compression; images are already compressed and /metrics is scraped
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics", imagesPrefix}),
	))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	h := handlers.New(svc.Images, svc.Teammates, svc.Analytics, handlers.HealthDeps{
		Env:         cfg,
		Environment: cfg.Environment,
		Ping:        pinger(db),
	})

	// Health
	r.GET("/health", h.Health)
	r.GET("/health/providers", h.HealthProviders)

	// Docs
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Locally stored images (Gemini and Imagen write them here)
	static := r.Group(imagesPrefix, middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:           cfg.Security.EnableHSTS,
		HSTSMaxAge:           cfg.Security.HSTSMaxAge,
		CrossOriginResources: true,
	}))
	static.Static("/", filepath.Join(cfg.Storage.PublicDir, "generated"))

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStore:    true,
	}))

	gen := generationLimit(cfg)
	{
		// Images
		api.POST("/images/generate", gen, h.GenerateImage)
		api.GET("/images/generate", h.ListImages)
		api.POST("/images/human-face", gen, h.HumanFace)
		api.GET("/images/human-face", h.ListHumanFaces)
		api.POST("/images/diverse-partner", gen, h.DiversePartner)
		api.GET("/images/diverse-partner", h.ListDiversePartners)
		api.GET("/images/history", h.ImageHistory)

		// Teammates
		api.POST("/teammates/generate", gen, h.CreateTeammate)
		api.GET("/teammates/generate", h.ListTeammates)

		// Analytics
		api.POST("/analytics/track", h.TrackVisit)
		api.GET("/analytics/track", h.RecentVisits)
		api.GET("/analytics/stats", h.Stats)
		api.POST("/analytics/stats", h.StatsAction)
	}
}

// generationLimit is the per-route limiter in front of provider calls. A
// zero rate disables it.
func generationLimit(cfg config.Config) gin.HandlerFunc {
	if cfg.GenRateRPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.NewRateLimiter(cfg.GenRateRPS, cfg.GenRateBurst, middleware.KeyByRouteAndIP()).Handler()
}

// corsMiddleware keeps the two postures: allow all origins when none are
// configured, otherwise echo allowlisted origins.
func corsMiddleware(cfg config.CORSConfig) []gin.HandlerFunc {
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "X-User-ID", "DNT", middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "ETag", "Retry-After", middleware.HeaderIdempotencyReplayed}
	methods := []string{"GET", "POST", "OPTIONS"}

	if len(cfg.AllowedOrigins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     methods,
				AllowHeaders:     allowHeaders,
				ExposeHeaders:    exposeHeaders,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// pinger checks the database behind db; nil db yields nil.
func pinger(db *gorm.DB) func(ctx context.Context) error {
	if db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
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
