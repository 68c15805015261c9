package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tbourn/teammate-generator/internal/config"
	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
	"github.com/tbourn/teammate-generator/internal/services"
)

func TestGenerateImage_PromptTooLong_NoProviderCall(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux}
	cfg := config.Config{Providers: config.ProviderConfig{ReplicateToken: "tok"}}
	r := newRouter(t, deps{images: newGeneration(db, cfg, flux)})

	body := `{"prompt":"` + strings.Repeat("x", 1001) + `"}`
	w := do(r, http.MethodPost, "/api/images/generate", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if flux.callCount() != 0 {
		t.Fatalf("adapter must not be called, got %d calls", flux.callCount())
	}
}

func TestGenerateImage_MissingConfig_503_NoProviderCall(t *testing.T) {
	db := newTestDB(t)
	qwen := &fakeAdapter{name: providers.Qwen}
	r := newRouter(t, deps{images: newGeneration(db, config.Config{}, qwen)})

	w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"a designer","provider":"qwen"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != ErrCodeNotConfigured || er.Error != "Service not properly configured" {
		t.Fatalf("unexpected body: %+v", er)
	}
	if len(er.MissingVars) != 1 || er.MissingVars[0] != config.EnvDashScopeAPIKey {
		t.Fatalf("missingVars=%v", er.MissingVars)
	}
	if qwen.callCount() != 0 {
		t.Fatalf("adapter must not be called")
	}
}

func TestGenerateImage_SeedBounds(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux}
	cfg := config.Config{Providers: config.ProviderConfig{ReplicateToken: "tok"}}
	r := newRouter(t, deps{images: newGeneration(db, cfg, flux)})

	for _, seed := range []string{"-1", "2147483648", "3000000000"} {
		w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"x","seed":`+seed+`}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("seed %s: status=%d body=%s", seed, w.Code, w.Body.String())
		}
	}
	if flux.callCount() != 0 {
		t.Fatalf("adapter must not be called, got %d calls", flux.callCount())
	}

	var got services.GenerateRequest
	img := &stubImages{generate: func(_ context.Context, req services.GenerateRequest) (providers.Result, error) {
		got = req
		return providers.Result{Status: providers.StatusCompleted, ImageURL: "u"}, nil
	}}
	r = newRouter(t, deps{images: img})
	w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"x","seed":2147483647}`)
	if w.Code != http.StatusOK || got.Seed == nil || *got.Seed != providers.MaxSeed {
		t.Fatalf("status=%d seed=%v", w.Code, got.Seed)
	}
}

func TestGenerateImage_UnknownProvider_400(t *testing.T) {
	db := newTestDB(t)
	r := newRouter(t, deps{images: newGeneration(db, config.Config{})})

	w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"x","provider":"dalle"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decode[ErrorResponse](t, w); er.Error != "Unsupported provider" {
		t.Fatalf("unexpected body: %+v", er)
	}
}

func TestGenerateImage_Success_StoresImageAndHistory(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux, result: providers.Result{
		ID: "p1", ImageURL: "https://img/1.png", Status: providers.StatusCompleted,
	}}
	cfg := config.Config{Providers: config.ProviderConfig{ReplicateToken: "tok"}}
	r := newRouter(t, deps{images: newGeneration(db, cfg, flux)})

	w := do(r, http.MethodPost, "/api/images/generate",
		`{"prompt":"engineer","style":"casual","aspectRatio":"16:9","userId":"u1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	resp := decode[GenerateImageResponse](t, w)
	if !resp.Success || resp.Message != "Image generated successfully" || resp.Data.ImageURL != "https://img/1.png" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	var images, history int64
	db.Model(&domain.GeneratedImage{}).Count(&images)
	db.Model(&domain.GenerationHistory{}).Where("user_id = ? AND success = ?", "u1", true).Count(&history)
	if images != 1 || history != 1 {
		t.Fatalf("images=%d history=%d", images, history)
	}
}

func TestGenerateImage_SoftFailure_200(t *testing.T) {
	img := &stubImages{generate: func(_ context.Context, _ services.GenerateRequest) (providers.Result, error) {
		return providers.Result{Status: providers.StatusFailed, Error: "nsfw"}, nil
	}}
	r := newRouter(t, deps{images: img})

	w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"x"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	resp := decode[GenerateImageResponse](t, w)
	if resp.Success || resp.Message != "Image generation failed" || resp.Data.Error != "nsfw" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestGenerateImage_AdapterError_500_HistoryOnly(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux, err: errors.New("upstream 502")}
	cfg := config.Config{Providers: config.ProviderConfig{ReplicateToken: "tok"}}
	r := newRouter(t, deps{images: newGeneration(db, cfg, flux)})

	w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"x","userId":"u9"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != ErrCodeService || er.Error != "Failed to generate image" || er.Details != "upstream 502" {
		t.Fatalf("unexpected body: %+v", er)
	}

	var images int64
	db.Model(&domain.GeneratedImage{}).Count(&images)
	var hist domain.GenerationHistory
	if err := db.Where("user_id = ?", "u9").First(&hist).Error; err != nil {
		t.Fatalf("history row: %v", err)
	}
	if images != 0 || hist.Success || hist.ErrorType == nil || *hist.ErrorType != services.ErrorTypeService {
		t.Fatalf("images=%d history=%+v", images, hist)
	}
}

func TestGenerateImage_DefaultsPassedToService(t *testing.T) {
	var got services.GenerateRequest
	img := &stubImages{generate: func(_ context.Context, req services.GenerateRequest) (providers.Result, error) {
		got = req
		return providers.Result{Status: providers.StatusCompleted, ImageURL: "u"}, nil
	}}
	r := newRouter(t, deps{images: img})

	w := do(r, http.MethodPost, "/api/images/generate", `{"prompt":"x"}`, "X-User-ID", "hdr-user")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got.Style != prompt.StyleRealistic || got.AspectRatio != "1:1" || got.UserID != "hdr-user" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestHumanFace_ReturnsPromptAndParameters(t *testing.T) {
	img := &stubImages{humanFace: func(_ context.Context, req services.HumanFaceRequest) (services.HumanFaceResult, error) {
		face := req.Face.Defaults()
		return services.HumanFaceResult{
			Result: providers.Result{Status: providers.StatusCompleted, ImageURL: "u", Prompt: "face prompt"},
			Face:   face,
		}, nil
	}}
	r := newRouter(t, deps{images: img})

	w := do(r, http.MethodPost, "/api/images/human-face", `{"gender":"woman","lighting":"studio"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	resp := decode[HumanFaceResponse](t, w)
	if resp.GeneratedPrompt != "face prompt" || resp.Parameters.Gender != "woman" ||
		resp.Parameters.Style != "headshot" || resp.Message != "Human face generated successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestHumanFace_InvalidLighting_400(t *testing.T) {
	r := newRouter(t, deps{})
	w := do(r, http.MethodPost, "/api/images/human-face", `{"lighting":"neon"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestDiversePartner_DefaultsAndError(t *testing.T) {
	var got services.DiversePartnerRequest
	img := &stubImages{diverse: func(_ context.Context, req services.DiversePartnerRequest) (services.DiversePartnerResult, error) {
		got = req
		return services.DiversePartnerResult{}, errors.New("quota")
	}}
	r := newRouter(t, deps{images: img})

	w := do(r, http.MethodPost, "/api/images/diverse-partner", `{}`)
	if got.Category != "business" || got.Description != "professional and approachable" ||
		got.Gender != "any" || got.Style != prompt.StyleRealistic {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	er := decode[ErrorResponse](t, w)
	if er.Error != "Failed to generate diverse AI partner with Imagen" || er.Provider != "imagen" {
		t.Fatalf("unexpected body: %+v", er)
	}
}

func TestListEndpoints_Filters(t *testing.T) {
	var filters []repo.ImageFilter
	img := &stubImages{list: func(_ context.Context, f repo.ImageFilter) ([]domain.GeneratedImage, error) {
		filters = append(filters, f)
		return nil, nil
	}}
	r := newRouter(t, deps{images: img})

	for _, path := range []string{
		"/api/images/generate?userId=u1&provider=flux&limit=3",
		"/api/images/human-face",
		"/api/images/diverse-partner?limit=500",
	} {
		w := do(r, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"data":[]`) {
			t.Fatalf("%s: expected empty array, got %s", path, w.Body.String())
		}
	}

	if f := filters[0]; f.UserID != "u1" || f.Provider != "flux" || f.Limit != 3 {
		t.Fatalf("generate filter: %+v", f)
	}
	if f := filters[1]; f.Type != services.TypeHumanFace || f.Limit != defaultImageLimit {
		t.Fatalf("human-face filter: %+v", f)
	}
	if f := filters[2]; f.Provider != "imagen" || f.Limit != maxListLimit {
		t.Fatalf("diverse filter: %+v", f)
	}
}

func TestListImages_Error_500(t *testing.T) {
	img := &stubImages{list: func(context.Context, repo.ImageFilter) ([]domain.GeneratedImage, error) {
		return nil, errors.New("db down")
	}}
	r := newRouter(t, deps{images: img})

	w := do(r, http.MethodGet, "/api/images/human-face", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decode[ErrorResponse](t, w); er.Error != "Failed to fetch human face images" {
		t.Fatalf("unexpected body: %+v", er)
	}
}

func TestImageHistory(t *testing.T) {
	img := &stubImages{history: func(_ context.Context, u string, n int) ([]domain.GenerationHistory, error) {
		return []domain.GenerationHistory{{ID: "h1", UserID: u}}, nil
	}}
	r := newRouter(t, deps{images: img})

	if w := do(r, http.MethodGet, "/api/images/history", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("missing user: status=%d", w.Code)
	}
	w := do(r, http.MethodGet, "/api/images/history?userId=u1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	resp := decode[HistoryListResponse](t, w)
	if len(resp.Data) != 1 || resp.Data[0].UserID != "u1" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
