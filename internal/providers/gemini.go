package providers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/tbourn/teammate-generator/internal/prompt"
)

// GeminiModel is the Gemini image model id.
const GeminiModel = "gemini-2.5-flash-image-preview"

// ContentModels is the slice of *genai.Models the Gemini adapter needs.
type ContentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdapter generates images with Gemini's native image output. Every
// prompt is diversified with a random set of characteristics unless the
// caller already folded one in.
type GeminiAdapter struct {
	models ContentModels
	store  ImageStore
	traits *prompt.Generator
}

func NewGemini(models ContentModels, store ImageStore, traits *prompt.Generator) *GeminiAdapter {
	if traits == nil {
		traits = prompt.NewGenerator(nil)
	}
	return &GeminiAdapter{models: models, store: store, traits: traits}
}

func (a *GeminiAdapter) Name() Name     { return Gemini }
func (a *GeminiAdapter) Model() string { return GeminiModel }

func (a *GeminiAdapter) GenerateImage(ctx context.Context, opts Options) (Result, error) {
	text := opts.Prompt
	ch := opts.Characteristics
	if ch == nil {
		drawn := a.traits.Generate()
		ch = &drawn
		text = prompt.WithDiversity(opts.Prompt, drawn)
	}
	seed := ch.Seed
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	aspect := orDefault(opts.AspectRatio, "1:1")
	params := map[string]any{
		"aspect_ratio":     aspect,
		"size":             geminiSize(aspect),
		"number_of_images": 1,
		"seed":             seed,
	}
	if opts.Style != "" {
		params["style"] = opts.Style
	}

	id := uuid.NewString()
	base := Result{ID: id, Prompt: text, Model: GeminiModel, Provider: Gemini, Parameters: params}
	started(ctx, base, aspect)
	if a.models == nil {
		return done(ctx, failedResult(base, errors.New("GEMINI_API_KEY is not configured")))
	}

	seed32, err := genaiSeed(seed)
	if err != nil {
		return done(ctx, failedResult(base, err))
	}

	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(text)}, genai.RoleUser)}
	res, err := a.models.GenerateContent(ctx, GeminiModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		Seed:               genai.Ptr(seed32),
	})
	if err != nil {
		return done(ctx, failedResult(base, err))
	}

	data, mime := firstInlineImage(res)
	if len(data) == 0 {
		return done(ctx, failedResult(base, errors.New("No images generated")))
	}
	url, err := a.store.Save("gemini-"+id+extForMIME(mime), data)
	if err != nil {
		return done(ctx, failedResult(base, err))
	}
	return done(ctx, completedResult(base, url))
}

// PortraitOptions composes the portrait with a fresh characteristics draw
// and hands the same draw to GenerateImage so it is not applied twice.
func (a *GeminiAdapter) PortraitOptions(req PortraitRequest) Options {
	ch := a.traits.Generate()
	return Options{
		Prompt: prompt.Compose("", prompt.Options{
			Category:        req.Category,
			Style:           req.Style,
			Description:     req.Description,
			Characteristics: &ch,
		}),
		AspectRatio:     "1:1",
		Style:           string(req.Style),
		Characteristics: &ch,
	}
}

func firstInlineImage(res *genai.GenerateContentResponse) ([]byte, string) {
	if res == nil {
		return nil, ""
	}
	for _, cand := range res.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType
			}
		}
	}
	return nil, ""
}

func geminiSize(aspect string) string {
	switch aspect {
	case "16:9":
		return "1792x1024"
	case "9:16":
		return "1024x1792"
	default:
		return "1024x1024"
	}
}
