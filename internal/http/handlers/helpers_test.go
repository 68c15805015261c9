package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/teammate-generator/internal/config"
	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/http/middleware"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
	"github.com/tbourn/teammate-generator/internal/services"
)

// ---------- test DB ----------

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ---------- fake adapter ----------

type fakeAdapter struct {
	name providers.Name

	mu    sync.Mutex
	calls int

	result providers.Result
	err    error
}

func (f *fakeAdapter) Name() providers.Name { return f.name }
func (f *fakeAdapter) Model() string        { return "fake/" + string(f.name) }

func (f *fakeAdapter) GenerateImage(_ context.Context, o providers.Options) (providers.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return providers.Result{}, f.err
	}
	r := f.result
	r.Provider = f.name
	r.Model = f.Model()
	r.Prompt = o.Prompt
	return r, nil
}

func (f *fakeAdapter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ---------- stub services ----------

type stubImages struct {
	generate  func(context.Context, services.GenerateRequest) (providers.Result, error)
	humanFace func(context.Context, services.HumanFaceRequest) (services.HumanFaceResult, error)
	diverse   func(context.Context, services.DiversePartnerRequest) (services.DiversePartnerResult, error)
	list      func(context.Context, repo.ImageFilter) ([]domain.GeneratedImage, error)
	history   func(context.Context, string, int) ([]domain.GenerationHistory, error)
}

func (s *stubImages) Generate(ctx context.Context, r services.GenerateRequest) (providers.Result, error) {
	return s.generate(ctx, r)
}

func (s *stubImages) HumanFace(ctx context.Context, r services.HumanFaceRequest) (services.HumanFaceResult, error) {
	return s.humanFace(ctx, r)
}

func (s *stubImages) DiversePartner(ctx context.Context, r services.DiversePartnerRequest) (services.DiversePartnerResult, error) {
	return s.diverse(ctx, r)
}

func (s *stubImages) ListImages(ctx context.Context, f repo.ImageFilter) ([]domain.GeneratedImage, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(ctx, f)
}

func (s *stubImages) History(ctx context.Context, u string, n int) ([]domain.GenerationHistory, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history(ctx, u, n)
}

type stubTeammates struct {
	create   func(context.Context, services.CreateTeammateRequest) (*domain.Teammate, *providers.Result, error)
	list     func(context.Context, repo.TeammateFilter) ([]domain.Teammate, error)
	stats    func(context.Context, repo.TeammateFilter) (int64, *time.Time, error)
	replay   func(context.Context, string, string) (*domain.Teammate, error)
	remember func(context.Context, string, string, string) error
}

func (s *stubTeammates) Create(ctx context.Context, r services.CreateTeammateRequest) (*domain.Teammate, *providers.Result, error) {
	return s.create(ctx, r)
}

func (s *stubTeammates) List(ctx context.Context, f repo.TeammateFilter) ([]domain.Teammate, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(ctx, f)
}

func (s *stubTeammates) Stats(ctx context.Context, f repo.TeammateFilter) (int64, *time.Time, error) {
	if s.stats == nil {
		return 0, nil, nil
	}
	return s.stats(ctx, f)
}

func (s *stubTeammates) Replay(ctx context.Context, scope, key string) (*domain.Teammate, error) {
	if s.replay == nil {
		return nil, repo.ErrNotFound
	}
	return s.replay(ctx, scope, key)
}

func (s *stubTeammates) Remember(ctx context.Context, scope, key, id string) error {
	if s.remember == nil {
		return nil
	}
	return s.remember(ctx, scope, key, id)
}

type stubAnalytics struct {
	track  func(context.Context, services.TrackRequest) error
	recent func(context.Context, int) ([]domain.VisitorTracking, error)
	stats  func(context.Context) (services.Stats, error)
	apply  func(context.Context, string) error
}

func (s *stubAnalytics) Track(ctx context.Context, r services.TrackRequest) error {
	return s.track(ctx, r)
}

func (s *stubAnalytics) RecentVisits(ctx context.Context, days int) ([]domain.VisitorTracking, error) {
	return s.recent(ctx, days)
}

func (s *stubAnalytics) Stats(ctx context.Context) (services.Stats, error) {
	return s.stats(ctx)
}

func (s *stubAnalytics) Apply(ctx context.Context, action string) error {
	return s.apply(ctx, action)
}

// ---------- router + request helpers ----------

type deps struct {
	images    ImageService
	teammates TeammateService
	analytics AnalyticsService
	health    HealthDeps
	lookup    middleware.IdempotencyLookup
}

func newRouter(t *testing.T, d deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if d.images == nil {
		d.images = &stubImages{}
	}
	if d.teammates == nil {
		d.teammates = &stubTeammates{}
	}
	if d.analytics == nil {
		d.analytics = &stubAnalytics{}
	}
	if d.health.Env == nil {
		d.health.Env = config.Config{}
	}
	h := New(d.images, d.teammates, d.analytics, d.health)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, d.lookup))
	r.GET("/health", h.Health)
	r.GET("/health/providers", h.HealthProviders)
	api := r.Group("/api")
	api.POST("/images/generate", h.GenerateImage)
	api.GET("/images/generate", h.ListImages)
	api.POST("/images/human-face", h.HumanFace)
	api.GET("/images/human-face", h.ListHumanFaces)
	api.POST("/images/diverse-partner", h.DiversePartner)
	api.GET("/images/diverse-partner", h.ListDiversePartners)
	api.GET("/images/history", h.ImageHistory)
	api.POST("/teammates/generate", h.CreateTeammate)
	api.GET("/teammates/generate", h.ListTeammates)
	api.POST("/analytics/track", h.TrackVisit)
	api.GET("/analytics/track", h.RecentVisits)
	api.GET("/analytics/stats", h.Stats)
	api.POST("/analytics/stats", h.StatsAction)
	return r
}

func do(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func newGeneration(db *gorm.DB, cfg config.Config, adapters ...providers.Adapter) *services.GenerationService {
	return &services.GenerationService{
		DB:       db,
		Registry: providers.NewRegistry(cfg, "", adapters...),
		Traits:   prompt.NewGenerator(rand.NewPCG(3, 4)),
	}
}

func configWithReplicate() config.Config {
	return config.Config{Providers: config.ProviderConfig{ReplicateToken: "tok"}}
}
