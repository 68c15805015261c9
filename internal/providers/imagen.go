package providers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/tbourn/teammate-generator/internal/prompt"
)

// ImagenModel is the Imagen 4 model id.
const ImagenModel = "imagen-4.0-generate-001"

// ImageModels is the slice of *genai.Models the Imagen adapter needs.
type ImageModels interface {
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

var imagenAspects = map[string]bool{
	"1:1": true, "16:9": true, "9:16": true, "16:10": true,
	"10:16": true, "3:2": true, "2:3": true,
}

// ImagenAdapter generates images with Imagen 4 and stores them locally.
type ImagenAdapter struct {
	models ImageModels
	store  ImageStore
}

// NewImagen returns an Imagen adapter. A nil models reports the missing key
// on every call.
func NewImagen(models ImageModels, store ImageStore) *ImagenAdapter {
	return &ImagenAdapter{models: models, store: store}
}

func (a *ImagenAdapter) Name() Name     { return Imagen }
func (a *ImagenAdapter) Model() string { return ImagenModel }

func (a *ImagenAdapter) GenerateImage(ctx context.Context, opts Options) (Result, error) {
	aspect := opts.AspectRatio
	if !imagenAspects[aspect] {
		aspect = "1:1"
	}
	params := map[string]any{
		"number_of_images":  1,
		"output_mime_type":  "image/jpeg",
		"person_generation": string(genai.PersonGenerationAllowAll),
		"aspect_ratio":      aspect,
		"image_size":        "1K",
	}
	if opts.Style != "" {
		params["style"] = opts.Style
	}
	if opts.Seed != nil {
		params["seed"] = *opts.Seed
	}

	id := uuid.NewString()
	base := Result{ID: id, Prompt: opts.Prompt, Model: ImagenModel, Provider: Imagen, Parameters: params}
	started(ctx, base, aspect)
	if a.models == nil {
		return done(ctx, failedResult(base, errors.New("GEMINI_API_KEY is not configured")))
	}

	cfg := &genai.GenerateImagesConfig{
		NumberOfImages:   1,
		OutputMIMEType:   "image/jpeg",
		PersonGeneration: genai.PersonGenerationAllowAll,
		AspectRatio:      aspect,
		ImageSize:        "1K",
	}
	if opts.Seed != nil {
		seed, err := genaiSeed(*opts.Seed)
		if err != nil {
			return done(ctx, failedResult(base, err))
		}
		// Imagen only honors a seed with watermarking off.
		cfg.Seed = genai.Ptr(seed)
		cfg.AddWatermark = false
	}

	res, err := a.models.GenerateImages(ctx, ImagenModel, opts.Prompt, cfg)
	if err != nil {
		return done(ctx, failedResult(base, err))
	}
	if res == nil || len(res.GeneratedImages) == 0 || res.GeneratedImages[0].Image == nil {
		return done(ctx, failedResult(base, errors.New("No images generated from Imagen API")))
	}

	img := res.GeneratedImages[0].Image
	url, err := a.store.Save("imagen-"+id+extForMIME(img.MIMEType), img.ImageBytes)
	if err != nil {
		return done(ctx, failedResult(base, err))
	}
	return done(ctx, completedResult(base, url))
}

func (a *ImagenAdapter) PortraitOptions(req PortraitRequest) Options {
	return Options{
		Prompt: prompt.Compose("", prompt.Options{
			Category:    req.Category,
			Style:       req.Style,
			Description: req.Description,
		}),
		AspectRatio: "1:1",
		Style:       string(req.Style),
	}
}
