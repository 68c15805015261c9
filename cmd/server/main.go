// Command server runs the teammate generator HTTP API.
//
//	@title			Teammate Generator API
//	@version		1.0
//	@description	Generates AI teammate portraits through pluggable image providers, stores teammate profiles and tracks site visits.
//	@BasePath		/api
//	@schemes		http https
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/tbourn/teammate-generator/internal/config"
	httpapi "github.com/tbourn/teammate-generator/internal/http"
	"github.com/tbourn/teammate-generator/internal/observability"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
	"github.com/tbourn/teammate-generator/internal/sysutil"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	build := observability.BuildInfo{
		Version:     sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version),
		Environment: cfg.Environment,
	}
	logger := sysutil.NewLogger(os.Stderr, sysutil.LoggerOptions{
		Level:       cfg.LogLevel,
		Pretty:      cfg.LogPretty,
		Service:     cfg.OTEL.ServiceName,
		Environment: build.Environment,
		Version:     build.Version,
	})
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(logger.WithContext(ctx), cfg, build); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, build observability.BuildInfo) error {
	lg := zerolog.Ctx(ctx)

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, build)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			lg.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	env := cfg.Check()
	if !env.IsValid {
		lg.Warn().Strs("missing", env.MissingVars).Msg("environment incomplete; generation endpoints will answer 503")
	}

	db, err := repo.OpenDatabase(cfg.DB)
	if err != nil {
		return err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	traits := prompt.NewGenerator(nil)
	reg, err := newRegistry(ctx, cfg, traits)
	if err != nil {
		return err
	}

	svc := httpapi.NewServices(db, reg, traits, cfg)
	svc.Analytics.StartSweeper(ctx, cfg.Analytics.SweepInterval)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().
			Str("addr", srv.Addr).
			Str("db", cfg.DB.Driver).
			Str("default_provider", cfg.Providers.Default).
			Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}

// newRegistry builds every adapter. Adapters whose credentials are missing
// are still registered; the registry reports them as not configured.
func newRegistry(ctx context.Context, cfg config.Config, traits *prompt.Generator) (*providers.Registry, error) {
	pc := cfg.Providers
	hc := &http.Client{Timeout: pc.Timeout}

	store := providers.LocalStore{
		Dir:       filepath.Join(cfg.Storage.PublicDir, "generated"),
		URLPrefix: cfg.Storage.URLPrefix,
	}

	var (
		imageModels   providers.ImageModels
		contentModels providers.ContentModels
	)
	if pc.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  pc.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		imageModels = client.Models
		contentModels = client.Models
	}

	replicate := providers.NewReplicateClient(pc.ReplicateBaseURL, pc.ReplicateToken, hc)

	return providers.NewRegistry(cfg, providers.Name(pc.Default),
		providers.NewFlux(replicate, traits),
		providers.NewIdeogram(replicate),
		providers.NewImagen(imageModels, store),
		providers.NewGemini(contentModels, store, traits),
		providers.NewQwen(pc.DashScopeURL, pc.DashScopeAPIKey, hc, traits),
	), nil
}
