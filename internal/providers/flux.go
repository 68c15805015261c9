package providers

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbourn/teammate-generator/internal/prompt"
)

// FluxModel is the Replicate model Flux runs on.
const FluxModel = "black-forest-labs/flux-dev"

// FluxAdapter generates images with FLUX.1 [dev] via Replicate.
type FluxAdapter struct {
	client *ReplicateClient
	seeds  *prompt.Generator
}

// NewFlux returns a Flux adapter. seeds supplies a random seed whenever the
// caller does not pin one.
func NewFlux(client *ReplicateClient, seeds *prompt.Generator) *FluxAdapter {
	if seeds == nil {
		seeds = prompt.NewGenerator(nil)
	}
	return &FluxAdapter{client: client, seeds: seeds}
}

func (a *FluxAdapter) Name() Name     { return Flux }
func (a *FluxAdapter) Model() string { return FluxModel }

func (a *FluxAdapter) GenerateImage(ctx context.Context, opts Options) (Result, error) {
	seed := a.seeds.Seed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	input := map[string]any{
		"prompt":            opts.Prompt,
		"aspect_ratio":      orDefault(opts.AspectRatio, "1:1"),
		"model":             "flux-dev",
		"steps":             20,
		"guidance":          3.5,
		"interval":          2,
		"safety_tolerance":  2,
		"prompt_upsampling": true,
		"seed":              seed,
	}

	base := Result{
		ID:         uuid.NewString(),
		Prompt:     opts.Prompt,
		Model:      FluxModel,
		Provider:   Flux,
		Parameters: input,
	}
	started(ctx, base, input["aspect_ratio"].(string))

	p, err := a.client.Run(ctx, FluxModel, input)
	if p != nil {
		base.ProviderID = p.ID
	}
	if err != nil {
		return done(ctx, failedResult(base, err))
	}
	urls := p.OutputURLs()
	if len(urls) == 0 {
		return done(ctx, failedResult(base, ErrNoImage))
	}
	return done(ctx, completedResult(base, urls[0]))
}

// PortraitOptions uses the face-enhanced prompt, which honours an age
// mentioned in the description.
func (a *FluxAdapter) PortraitOptions(req PortraitRequest) Options {
	enh := prompt.TeammateFace(req.Name, req.Category, req.Description, req.Style)
	return Options{
		Prompt:      enh.Prompt,
		AspectRatio: "1:1",
		Style:       string(req.Style),
	}
}
