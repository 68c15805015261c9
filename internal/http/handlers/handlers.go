// Package handlers: service contracts and handler wiring.
//
// Handlers are transport-thin: they bind and validate input, call a service
// and translate the outcome into the response envelopes of response.go.
package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/teammate-generator/internal/config"
	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
	"github.com/tbourn/teammate-generator/internal/services"
	"github.com/tbourn/teammate-generator/internal/utils"
)

// ImageService generates and lists images.
type ImageService interface {
	Generate(ctx context.Context, req services.GenerateRequest) (providers.Result, error)
	HumanFace(ctx context.Context, req services.HumanFaceRequest) (services.HumanFaceResult, error)
	DiversePartner(ctx context.Context, req services.DiversePartnerRequest) (services.DiversePartnerResult, error)
	ListImages(ctx context.Context, f repo.ImageFilter) ([]domain.GeneratedImage, error)
	History(ctx context.Context, userID string, limit int) ([]domain.GenerationHistory, error)
}

// TeammateService creates and lists teammates and remembers idempotent
// creations.
type TeammateService interface {
	Create(ctx context.Context, req services.CreateTeammateRequest) (*domain.Teammate, *providers.Result, error)
	List(ctx context.Context, f repo.TeammateFilter) ([]domain.Teammate, error)
	Stats(ctx context.Context, f repo.TeammateFilter) (int64, *time.Time, error)
	Replay(ctx context.Context, scope, key string) (*domain.Teammate, error)
	Remember(ctx context.Context, scope, key, teammateID string) error
}

// AnalyticsService records visits and serves counters.
type AnalyticsService interface {
	Track(ctx context.Context, req services.TrackRequest) error
	RecentVisits(ctx context.Context, days int) ([]domain.VisitorTracking, error)
	Stats(ctx context.Context) (services.Stats, error)
	Apply(ctx context.Context, action string) error
}

// Readiness reports configuration presence. config.Config satisfies it.
type Readiness interface {
	Check() config.EnvCheck
	IsConfigured(provider string) bool
	RequiredVars(provider string) []string
	MissingVars(provider string) []string
	DatabaseConfigured() bool
	BackendConfigured(backend string) bool
}

// HealthDeps feed the health endpoints.
type HealthDeps struct {
	Env         Readiness
	Environment string
	// Ping checks the database connection; nil skips the check.
	Ping func(ctx context.Context) error
}

// Handlers groups every API endpoint.
type Handlers struct {
	images    ImageService
	teammates TeammateService
	analytics AnalyticsService
	health    HealthDeps

	now func() time.Time
}

// New binds handlers to their services.
func New(images ImageService, teammates TeammateService, analytics AnalyticsService, health HealthDeps) *Handlers {
	registerValidatorTags()
	return &Handlers{
		images:    images,
		teammates: teammates,
		analytics: analytics,
		health:    health,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// userID prefers the id sent in the body or query and falls back to the
// X-User-ID header. There is no authentication; the id is a loose key.
func userID(c *gin.Context, fromRequest string) string {
	if s := strings.TrimSpace(fromRequest); s != "" {
		return s
	}
	if c != nil && c.Request != nil {
		return strings.TrimSpace(c.GetHeader("X-User-ID"))
	}
	return ""
}

// queryLimit parses ?limit= bounded to [1, max], defaulting to def.
func queryLimit(c *gin.Context, def, max int) int {
	return utils.Limit(c.Query("limit"), def, max)
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
