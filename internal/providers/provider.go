// Package providers wraps the third-party text-to-image backends (Ideogram
// and Flux on Replicate, Imagen and Gemini through the genai SDK, Qwen on
// DashScope) behind one Adapter contract.
//
// Adapters never surface upstream failures as Go errors: a network,
// decoding, or storage problem becomes a Result with StatusFailed and a
// human-readable Error. A non-nil error from GenerateImage is reserved for
// failures outside the provider call itself, and callers treat it as a
// service error.
package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tbourn/teammate-generator/internal/prompt"
)

// Name identifies a provider. Values match the config provider names.
type Name string

const (
	Flux     Name = "flux"
	Ideogram Name = "ideogram"
	Imagen   Name = "imagen"
	Gemini   Name = "gemini"
	Qwen     Name = "qwen"
)

// Result statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Options is the provider-neutral generation request. Adapters ignore the
// fields their backend does not support.
type Options struct {
	Prompt      string
	AspectRatio string
	// Style is the portrait style; recorded by genai adapters.
	Style string
	// Seed overrides any seed the adapter would draw itself.
	Seed *int64

	// Ideogram
	StyleType   string
	MagicPrompt string

	// Qwen
	NegativePrompt string
	Image          string
	Watermark      bool
	GuidanceScale  float64
	Steps          int

	// Characteristics already folded into Prompt. Adapters that diversify
	// prompts skip drawing their own when set.
	Characteristics *prompt.Characteristics
}

// Result is what an adapter returns for one call.
type Result struct {
	ID         string         `json:"id"`
	ImageURL   string         `json:"imageUrl"`
	Prompt     string         `json:"prompt"`
	ProviderID string         `json:"replicateId,omitempty"`
	Model      string         `json:"model"`
	Provider   Name           `json:"provider"`
	Parameters map[string]any `json:"parameters"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
}

// Completed reports whether the result carries an image.
func (r Result) Completed() bool { return r.Status == StatusCompleted }

// Adapter generates one image through a specific backend.
type Adapter interface {
	Name() Name
	Model() string
	GenerateImage(ctx context.Context, opts Options) (Result, error)
}

// PortraitRequest describes a teammate portrait.
type PortraitRequest struct {
	Name        string
	Category    string
	Description string
	Style       prompt.Style
}

// Portraitist is implemented by adapters that build their own teammate
// portrait prompt and defaults.
type Portraitist interface {
	PortraitOptions(req PortraitRequest) Options
}

// MaxSeed is the largest seed the genai backends accept.
const MaxSeed = math.MaxInt32

// genaiSeed narrows a seed to the int32 the genai SDK sends. Out-of-range
// seeds are refused rather than wrapped.
func genaiSeed(seed int64) (int32, error) {
	if seed < 0 || seed > MaxSeed {
		return 0, fmt.Errorf("seed %d out of range [0, %d]", seed, MaxSeed)
	}
	return int32(seed), nil
}

// ErrNoImage is reported when an upstream call succeeds without an image.
var ErrNoImage = errors.New("no image returned by provider")

// completedResult enforces the result invariant: a completed result always
// has a URL, otherwise it degrades to a failed one.
func completedResult(base Result, url string) Result {
	if strings.TrimSpace(url) == "" {
		return failedResult(base, ErrNoImage)
	}
	base.ImageURL = url
	base.Status = StatusCompleted
	base.Error = ""
	return base
}

// failedResult enforces the result invariant: a failed result always has a
// non-empty error and never a URL.
func failedResult(base Result, err error) Result {
	msg := "unknown error occurred"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	base.ImageURL = ""
	base.Status = StatusFailed
	base.Error = msg
	return base
}

// started logs the outgoing call. Keys and tokens are never logged.
func started(ctx context.Context, r Result, aspect string) {
	zerolog.Ctx(ctx).Debug().
		Str("provider", string(r.Provider)).
		Str("model", r.Model).
		Str("aspect_ratio", aspect).
		Msg("image generation started")
}

// done logs a failed result and returns it with a nil error.
func done(ctx context.Context, r Result) (Result, error) {
	if !r.Completed() {
		zerolog.Ctx(ctx).Warn().
			Str("provider", string(r.Provider)).
			Str("model", r.Model).
			Str("error", r.Error).
			Msg("image generation failed")
	}
	return r, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
