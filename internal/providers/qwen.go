package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/tbourn/teammate-generator/internal/prompt"
)

// DefaultDashScopeURL is the multimodal generation endpoint for Qwen.
const DefaultDashScopeURL = "https://dashscope-intl.aliyuncs.com/api/v1/services/aigc/multimodal-generation/generation"

const (
	qwenGenerateModel = "qwen-image-generation"
	qwenEditModel     = "qwen-image-edit"
)

type dashScopeResponse struct {
	Output struct {
		TaskID     string `json:"task_id"`
		TaskStatus string `json:"task_status"`
		Results    []struct {
			URL string `json:"url"`
		} `json:"results"`
	} `json:"output"`
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// QwenAdapter generates (or edits, when Options.Image is set) images with
// Qwen-Image on DashScope.
type QwenAdapter struct {
	url   string
	api   jsonClient
	seeds *prompt.Generator
}

// NewQwen returns a Qwen adapter posting to url (DefaultDashScopeURL when
// empty).
func NewQwen(url, apiKey string, hc *http.Client, seeds *prompt.Generator) *QwenAdapter {
	if url == "" {
		url = DefaultDashScopeURL
	}
	if seeds == nil {
		seeds = prompt.NewGenerator(nil)
	}
	return &QwenAdapter{url: url, api: newJSONClient(apiKey, hc), seeds: seeds}
}

func (a *QwenAdapter) Name() Name     { return Qwen }
func (a *QwenAdapter) Model() string { return qwenGenerateModel }

func (a *QwenAdapter) GenerateImage(ctx context.Context, opts Options) (Result, error) {
	model := qwenGenerateModel
	var content []map[string]any
	if opts.Image != "" {
		model = qwenEditModel
		content = append(content, map[string]any{"image": opts.Image})
	}
	content = append(content, map[string]any{"text": opts.Prompt})

	params := map[string]any{
		"negative_prompt": opts.NegativePrompt,
		"watermark":       opts.Watermark,
	}
	if opts.Seed != nil && *opts.Seed > 0 {
		params["seed"] = *opts.Seed
	}
	if opts.GuidanceScale > 0 {
		params["guidance_scale"] = opts.GuidanceScale
	}
	if opts.Steps > 0 {
		params["num_inference_steps"] = opts.Steps
	}
	payload := map[string]any{
		"model": model,
		"input": map[string]any{
			"messages": []map[string]any{{"role": "user", "content": content}},
		},
		"parameters": params,
	}

	base := Result{
		ID:         uuid.NewString(),
		Prompt:     opts.Prompt,
		Model:      model,
		Provider:   Qwen,
		Parameters: params,
	}
	started(ctx, base, "")
	if a.api.token == "" {
		return done(ctx, failedResult(base, errors.New("DASHSCOPE_API_KEY is not configured")))
	}

	var out dashScopeResponse
	if err := a.api.do(ctx, http.MethodPost, a.url, payload, nil, &out); err != nil {
		var he *HTTPError
		if errors.As(err, &he) {
			err = fmt.Errorf("DashScope API error: %d - %s", he.StatusCode, he.Body)
		}
		return done(ctx, failedResult(base, err))
	}
	if out.Code != "" && out.Code != "200" {
		msg := orDefault(out.Message, "Unknown error")
		return done(ctx, failedResult(base, fmt.Errorf("DashScope API error: %s - %s", out.Code, msg)))
	}
	if out.RequestID != "" {
		base.ID = out.RequestID
		base.ProviderID = out.RequestID
	}
	if len(out.Output.Results) == 0 || out.Output.Results[0].URL == "" {
		return done(ctx, failedResult(base, errors.New("No image URL returned from DashScope API")))
	}
	return done(ctx, completedResult(base, out.Output.Results[0].URL))
}

// PortraitOptions uses the compact prompt; Qwen rewrites prompts itself.
func (a *QwenAdapter) PortraitOptions(req PortraitRequest) Options {
	seed := int64(a.seeds.IntN(1000))
	return Options{
		Prompt:        prompt.ShortPortrait(req.Name, req.Category, req.Description, req.Style),
		Style:         string(req.Style),
		Seed:          &seed,
		GuidanceScale: 1.5,
		Steps:         20,
	}
}
