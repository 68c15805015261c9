package providers

import (
	"context"

	"github.com/google/uuid"

	"github.com/tbourn/teammate-generator/internal/prompt"
)

// IdeogramModel is the Replicate model Ideogram runs on.
const IdeogramModel = "ideogram-ai/ideogram-v3-turbo"

// IdeogramAdapter generates images with Ideogram v3 Turbo via Replicate.
type IdeogramAdapter struct {
	client *ReplicateClient
}

func NewIdeogram(client *ReplicateClient) *IdeogramAdapter {
	return &IdeogramAdapter{client: client}
}

func (a *IdeogramAdapter) Name() Name     { return Ideogram }
func (a *IdeogramAdapter) Model() string { return IdeogramModel }

func (a *IdeogramAdapter) GenerateImage(ctx context.Context, opts Options) (Result, error) {
	input := map[string]any{
		"prompt":              opts.Prompt,
		"aspect_ratio":        orDefault(opts.AspectRatio, "1:1"),
		"model":               "V_3_TURBO",
		"magic_prompt_option": orDefault(opts.MagicPrompt, "Auto"),
	}
	if opts.Seed != nil {
		input["seed"] = *opts.Seed
	}
	if opts.StyleType != "" {
		input["style_type"] = opts.StyleType
	}

	base := Result{
		ID:         uuid.NewString(),
		Prompt:     opts.Prompt,
		Model:      IdeogramModel,
		Provider:   Ideogram,
		Parameters: input,
	}
	started(ctx, base, input["aspect_ratio"].(string))

	p, err := a.client.Run(ctx, IdeogramModel, input)
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

// PortraitOptions composes the full portrait prompt and asks Ideogram for a
// realistic render with magic prompt forced on.
func (a *IdeogramAdapter) PortraitOptions(req PortraitRequest) Options {
	return Options{
		Prompt: prompt.Compose("", prompt.Options{
			Category:    req.Category,
			Style:       req.Style,
			Description: req.Description,
		}),
		AspectRatio: "1:1",
		Style:       string(req.Style),
		StyleType:   "Realistic",
		MagicPrompt: "On",
	}
}
