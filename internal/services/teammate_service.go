package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
)

// TeammateService creates and lists teammate profiles.
type TeammateService struct {
	DB     *gorm.DB
	Images *GenerationService

	// IdempotencyTTL is how long a remembered Idempotency-Key replays.
	IdempotencyTTL time.Duration
}

// CreateTeammateRequest is a validated POST /teammates/generate body.
type CreateTeammateRequest struct {
	UserID        string
	Name          string
	Category      string
	Bio           string
	Skills        []string
	Interests     []string
	Age           *int
	Location      string
	GenerateImage bool
	ImageStyle    prompt.Style
	ImagePrompt   string
	Provider      string
}

// Create stores a teammate, generating a portrait first when requested. A
// failed portrait still creates the teammate without an image; the result is
// returned so callers can report it. Selection problems (unknown provider,
// missing configuration) abort before anything is written.
func (s *TeammateService) Create(ctx context.Context, req CreateTeammateRequest) (*domain.Teammate, *providers.Result, error) {
	ctx, span := otel.Tracer("services/TeammateService").Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", req.UserID),
			attribute.String("teammate.category", req.Category),
			attribute.Bool("generate_image", req.GenerateImage),
		),
	)
	defer span.End()

	tm := &domain.Teammate{
		UserID:    optional(req.UserID),
		Name:      req.Name,
		Age:       req.Age,
		Location:  optional(req.Location),
		Bio:       req.Bio,
		Skills:    jsonList(req.Skills),
		Interests: jsonList(req.Interests),
		Category:  req.Category,
	}

	var (
		res     *providers.Result
		elapsed time.Duration
		desc    string
	)
	if req.GenerateImage {
		desc = req.ImagePrompt
		if desc == "" {
			desc = fmt.Sprintf("%s, professional in %s", req.Bio, req.Category)
		}
		start := time.Now()
		r, err := s.Images.Portrait(ctx, req.Provider, providers.PortraitRequest{
			Name:        req.Name,
			Category:    req.Category,
			Description: desc,
			Style:       req.ImageStyle,
		}, req.UserID)
		if err != nil {
			return nil, nil, err
		}
		elapsed = time.Since(start)
		res = &r
		if r.Completed() {
			tm.ImageURL = optional(r.ImageURL)
			tm.ImagePrompt = optional(r.Prompt)
		}
	}

	if err := repo.CreateTeammate(ctx, s.DB, tm); err != nil {
		return nil, res, fmt.Errorf("store teammate: %w", err)
	}

	if res != nil {
		if res.Completed() {
			s.Images.storeImage(ctx, *res, req.UserID, tm.ID, res.Parameters)
		}
		hist := domain.GenerationHistory{
			UserID:         req.UserID,
			Prompt:         desc,
			Category:       optional(req.Category),
			Style:          string(req.ImageStyle),
			Provider:       optional(string(res.Provider)),
			GenerationTime: seconds(elapsed),
			Success:        res.Completed(),
		}
		if !res.Completed() {
			hist.ErrorType = optional(res.Error)
		}
		s.Images.recordHistory(ctx, hist)
	}
	return tm, res, nil
}

// List returns teammates newest first.
func (s *TeammateService) List(ctx context.Context, f repo.TeammateFilter) ([]domain.Teammate, error) {
	ctx, span := otel.Tracer("services/TeammateService").Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("user.id", f.UserID),
			attribute.String("teammate.category", f.Category),
			attribute.Int("limit", f.Limit),
		),
	)
	defer span.End()
	return repo.ListTeammates(ctx, s.DB, f)
}

// Stats returns the count and latest update of the teammates matched by f,
// used for the list ETag.
func (s *TeammateService) Stats(ctx context.Context, f repo.TeammateFilter) (int64, *time.Time, error) {
	return repo.TeammatesStats(ctx, s.DB, f)
}

// HasReplay reports whether key has a live record in scope.
func (s *TeammateService) HasReplay(ctx context.Context, scope, key string, now time.Time) (bool, error) {
	_, err := repo.GetIdempotency(ctx, s.DB, scope, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Replay returns the teammate remembered for key, or repo.ErrNotFound.
func (s *TeammateService) Replay(ctx context.Context, scope, key string) (*domain.Teammate, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return repo.GetTeammate(ctx, s.DB, rec.ResourceID)
}

// Remember binds key to a created teammate. A concurrent duplicate is not an
// error.
func (s *TeammateService) Remember(ctx context.Context, scope, key, teammateID string) error {
	if key == "" || s.IdempotencyTTL <= 0 {
		return nil
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, scope, key, teammateID, http.StatusOK, s.IdempotencyTTL)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

func jsonList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
