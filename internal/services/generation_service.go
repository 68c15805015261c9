// Package services – GenerationService
//
// GenerationService is the generation orchestrator: it selects a provider,
// composes the prompt, calls the adapter, and records the outcome. Image
// rows and history rows are independent best-effort writes; a failure to
// store either is logged and never changes what the caller sees.
//
// Observability: every adapter call runs in its own span and is counted in
// image_generations_total.

package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/observability"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
)

// ErrorTypeService is the history error type for adapter errors.
const ErrorTypeService = "service_error"

// History categories and image types written by the specialised endpoints.
const (
	TypeHumanFace = "human-face"
)

// GenerationService orchestrates provider calls.
type GenerationService struct {
	DB       *gorm.DB
	Registry *providers.Registry
	Traits   *prompt.Generator

	// Timeout bounds a single adapter call; zero leaves it unbounded.
	Timeout time.Duration
}

// GenerateRequest is a validated POST /images/generate body.
type GenerateRequest struct {
	Prompt      string
	Style       prompt.Style
	AspectRatio string
	Category    string
	Provider    string
	UserID      string
	TeammateID  string
	Seed        *int64
}

// Generate composes the request prompt, calls the selected adapter and stores
// the result. Selection problems return ErrUnknownProvider or *ConfigError
// before any call is made. An adapter error is returned as is after the
// failure has been recorded in history.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (providers.Result, error) {
	adapter, err := s.Registry.Select(req.Provider)
	if err != nil {
		return providers.Result{}, err
	}

	opts := providers.Options{
		Prompt: prompt.Compose(req.Prompt, prompt.Options{
			Category: req.Category,
			Style:    req.Style,
		}),
		AspectRatio: req.AspectRatio,
		Style:       string(req.Style),
		Seed:        req.Seed,
	}

	res, elapsed, err := s.call(ctx, adapter, opts, req.UserID)
	hist := domain.GenerationHistory{
		UserID:         req.UserID,
		Prompt:         req.Prompt,
		Category:       optional(req.Category),
		Style:          string(req.Style),
		Provider:       optional(string(adapter.Name())),
		GenerationTime: seconds(elapsed),
	}
	if err != nil {
		hist.ErrorType = optional(ErrorTypeService)
		s.recordHistory(ctx, hist)
		return providers.Result{}, err
	}

	if res.Completed() {
		s.storeImage(ctx, res, req.UserID, req.TeammateID, res.Parameters)
	}
	hist.Success = res.Completed()
	if !res.Completed() {
		hist.ErrorType = optional(res.Error)
	}
	s.recordHistory(ctx, hist)
	return res, nil
}

// HumanFaceRequest is a validated POST /images/human-face body.
type HumanFaceRequest struct {
	Face         prompt.HumanFaceParams
	CustomPrompt string
	UserID       string
}

// HumanFaceResult carries the adapter result plus the face parameters used.
type HumanFaceResult struct {
	Result providers.Result
	Face   prompt.HumanFaceParams
}

// HumanFace renders a realistic face with Ideogram at 3:2.
func (s *GenerationService) HumanFace(ctx context.Context, req HumanFaceRequest) (HumanFaceResult, error) {
	face := req.Face.Defaults()
	adapter, err := s.Registry.Select(string(providers.Ideogram))
	if err != nil {
		return HumanFaceResult{Face: face}, err
	}

	text := prompt.HumanFace(face)
	if req.CustomPrompt != "" {
		text = prompt.CustomFace(req.CustomPrompt)
	}
	opts := providers.Options{
		Prompt:      text,
		AspectRatio: "3:2",
		StyleType:   "Realistic",
		MagicPrompt: "On",
	}

	res, elapsed, err := s.call(ctx, adapter, opts, req.UserID)
	hist := domain.GenerationHistory{
		UserID:         req.UserID,
		Category:       optional(TypeHumanFace),
		Style:          face.Style,
		Provider:       optional(string(adapter.Name())),
		GenerationTime: seconds(elapsed),
	}
	if err != nil {
		hist.Prompt = req.CustomPrompt
		if hist.Prompt == "" {
			hist.Prompt = "realistic human face"
		}
		hist.ErrorType = optional(ErrorTypeService)
		s.recordHistory(ctx, hist)
		return HumanFaceResult{Face: face}, err
	}

	if res.Completed() {
		params := merge(res.Parameters, map[string]any{"faceParams": face, "type": TypeHumanFace})
		s.storeImage(ctx, res, req.UserID, "", params)
	}
	hist.Prompt = res.Prompt
	hist.Success = res.Completed()
	if !res.Completed() {
		hist.ErrorType = optional(res.Error)
	}
	s.recordHistory(ctx, hist)
	return HumanFaceResult{Result: res, Face: face}, nil
}

// DiversePartnerRequest is a validated POST /images/diverse-partner body.
type DiversePartnerRequest struct {
	Category    string
	Description string
	Style       prompt.Style
	Gender      string
	UserID      string
	TeammateID  string
}

// DiversePartnerResult carries the adapter result and the characteristics
// drawn for it.
type DiversePartnerResult struct {
	Result          providers.Result
	Characteristics prompt.Characteristics
}

// DiversePartner renders a randomized-characteristics portrait with Imagen.
// The characteristics seed is passed to the provider.
func (s *GenerationService) DiversePartner(ctx context.Context, req DiversePartnerRequest) (DiversePartnerResult, error) {
	adapter, err := s.Registry.Select(string(providers.Imagen))
	if err != nil {
		return DiversePartnerResult{}, err
	}

	ch := s.Traits.Generate()
	opts := providers.Options{
		Prompt:          prompt.DiversePartner(ch, req.Gender, req.Description),
		AspectRatio:     "1:1",
		Style:           string(req.Style),
		Seed:            &ch.Seed,
		Characteristics: &ch,
	}

	res, elapsed, err := s.call(ctx, adapter, opts, req.UserID)
	hist := domain.GenerationHistory{
		UserID:         req.UserID,
		Category:       optional(req.Category),
		Style:          string(req.Style),
		Provider:       optional(string(adapter.Name())),
		GenerationTime: seconds(elapsed),
	}
	if err != nil {
		hist.Prompt = "Diverse " + req.Category + " AI partner"
		hist.ErrorType = optional(ErrorTypeService)
		s.recordHistory(ctx, hist)
		return DiversePartnerResult{Characteristics: ch}, err
	}

	if res.Completed() {
		params := merge(res.Parameters, map[string]any{
			"category":    req.Category,
			"description": req.Description,
			"style":       string(req.Style),
			"gender":      req.Gender,
		})
		s.storeImage(ctx, res, req.UserID, req.TeammateID, params)
	}
	hist.Prompt = res.Prompt
	hist.Success = res.Completed()
	if !res.Completed() {
		hist.ErrorType = optional(res.Error)
	}
	s.recordHistory(ctx, hist)
	return DiversePartnerResult{Result: res, Characteristics: ch}, nil
}

// Portrait generates a teammate portrait with the selected adapter. A non-nil
// error is only returned for selection problems; adapter errors are folded
// into a failed result.
func (s *GenerationService) Portrait(ctx context.Context, provider string, req providers.PortraitRequest, userID string) (providers.Result, error) {
	adapter, err := s.Registry.Select(provider)
	if err != nil {
		return providers.Result{}, err
	}
	opts := providers.PortraitOptions(adapter, req)
	res, _, err := s.call(ctx, adapter, opts, userID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("provider", string(adapter.Name())).Msg("teammate portrait failed")
		return providers.Result{
			Prompt:   opts.Prompt,
			Provider: adapter.Name(),
			Model:    adapter.Model(),
			Status:   providers.StatusFailed,
			Error:    err.Error(),
		}, nil
	}
	return res, nil
}

// ListImages returns stored images newest first.
func (s *GenerationService) ListImages(ctx context.Context, f repo.ImageFilter) ([]domain.GeneratedImage, error) {
	ctx, span := otel.Tracer("services/GenerationService").Start(ctx, "ListImages",
		trace.WithAttributes(
			attribute.String("user.id", f.UserID),
			attribute.String("image.provider", f.Provider),
			attribute.String("image.type", f.Type),
			attribute.Int("limit", f.Limit),
		),
	)
	defer span.End()
	return repo.ListImages(ctx, s.DB, f)
}

// History returns a user's generation attempts newest first.
func (s *GenerationService) History(ctx context.Context, userID string, limit int) ([]domain.GenerationHistory, error) {
	ctx, span := otel.Tracer("services/GenerationService").Start(ctx, "History",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.Int("limit", limit)),
	)
	defer span.End()
	return repo.ListHistory(ctx, s.DB, userID, limit)
}

// call runs one adapter call under the configured timeout.
func (s *GenerationService) call(ctx context.Context, a providers.Adapter, opts providers.Options, userID string) (providers.Result, time.Duration, error) {
	ctx, span := otel.Tracer("services/GenerationService").Start(ctx, "GenerateImage",
		trace.WithAttributes(
			attribute.String("provider", string(a.Name())),
			attribute.String("model", a.Model()),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := a.GenerateImage(ctx, opts)
	elapsed := time.Since(start)

	status := res.Status
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("result.status", status))
	observability.ObserveGeneration(string(a.Name()), status, elapsed)
	return res, elapsed, err
}

func (s *GenerationService) storeImage(ctx context.Context, res providers.Result, userID, teammateID string, params map[string]any) {
	raw, err := json.Marshal(params)
	if err != nil {
		raw = []byte("{}")
	}
	img := &domain.GeneratedImage{
		UserID:     optional(userID),
		TeammateID: optional(teammateID),
		Prompt:     res.Prompt,
		ImageURL:   res.ImageURL,
		ProviderID: optional(res.ProviderID),
		Model:      res.Model,
		Provider:   string(res.Provider),
		Parameters: datatypes.JSON(raw),
		Status:     domain.StatusCompleted,
	}
	if err := repo.CreateImage(ctx, s.DB, img); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("provider", img.Provider).Msg("store image record")
	}
}

// recordHistory writes a history row when the request carries a user id.
func (s *GenerationService) recordHistory(ctx context.Context, h domain.GenerationHistory) {
	if h.UserID == "" {
		return
	}
	if err := repo.CreateHistory(ctx, s.DB, &h); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", h.UserID).Msg("store generation history")
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func seconds(d time.Duration) int {
	return int(math.Round(d.Seconds()))
}

func merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
