package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
)

func TestGenerate_StoresImageAndHistory(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux, result: completed("https://x/a.png")}
	svc := newGeneration(t, db, reqMap{}, flux)

	res, err := svc.Generate(context.Background(), GenerateRequest{
		Prompt:   "friendly engineer",
		Style:    prompt.StyleRealistic,
		Category: "technology",
		UserID:   "u1",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !res.Completed() || res.ImageURL != "https://x/a.png" || res.Provider != providers.Flux {
		t.Fatalf("unexpected result: %+v", res)
	}
	if flux.callCount() != 1 {
		t.Fatalf("adapter calls = %d", flux.callCount())
	}
	if got := flux.calls[0].Prompt; !strings.Contains(got, "friendly engineer") || !strings.HasSuffix(got, prompt.ClosingBoilerplate) {
		t.Fatalf("prompt not composed: %q", got)
	}

	imgs, err := repo.ListImages(context.Background(), db, repo.ImageFilter{UserID: "u1"})
	if err != nil || len(imgs) != 1 {
		t.Fatalf("images = %v, %v", imgs, err)
	}
	if imgs[0].Status != domain.StatusCompleted || imgs[0].Provider != "flux" {
		t.Fatalf("image row: %+v", imgs[0])
	}

	hist, err := repo.ListHistory(context.Background(), db, "u1", 10)
	if err != nil || len(hist) != 1 {
		t.Fatalf("history = %v, %v", hist, err)
	}
	if !hist[0].Success || hist[0].Prompt != "friendly engineer" || hist[0].ErrorType != nil {
		t.Fatalf("history row: %+v", hist[0])
	}
}

func TestGenerate_SoftFailureRecordsHistoryOnly(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux, result: providers.Result{
		Status: providers.StatusFailed,
		Error:  "nsfw content",
	}}
	svc := newGeneration(t, db, reqMap{}, flux)

	res, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p", UserID: "u1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Completed() || res.Error != "nsfw content" {
		t.Fatalf("want failed result, got %+v", res)
	}
	if n, _ := repo.CountImagesByStatus(context.Background(), db, domain.StatusCompleted); n != 0 {
		t.Fatalf("failed generation must not store an image, got %d", n)
	}
	hist, _ := repo.ListHistory(context.Background(), db, "u1", 10)
	if len(hist) != 1 || hist[0].Success || hist[0].ErrorType == nil || *hist[0].ErrorType != "nsfw content" {
		t.Fatalf("history: %+v", hist)
	}
}

func TestGenerate_AdapterErrorIsServiceError(t *testing.T) {
	db := newTestDB(t)
	boom := errors.New("boom")
	flux := &fakeAdapter{name: providers.Flux, err: boom}
	svc := newGeneration(t, db, reqMap{}, flux)

	_, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p", UserID: "u1"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	hist, _ := repo.ListHistory(context.Background(), db, "u1", 10)
	if len(hist) != 1 || hist[0].ErrorType == nil || *hist[0].ErrorType != ErrorTypeService {
		t.Fatalf("history: %+v", hist)
	}
}

func TestGenerate_NoHistoryWithoutUser(t *testing.T) {
	db := newTestDB(t)
	svc := newGeneration(t, db, reqMap{}, &fakeAdapter{name: providers.Flux, result: completed("u")})

	if _, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n, _ := repo.CountSuccessfulHistory(context.Background(), db); n != 0 {
		t.Fatalf("history rows = %d", n)
	}
}

func TestGenerate_ConfigErrorBeforeCall(t *testing.T) {
	db := newTestDB(t)
	flux := &fakeAdapter{name: providers.Flux}
	qwen := &fakeAdapter{name: providers.Qwen}
	svc := newGeneration(t, db, reqMap{
		"flux": {"REPLICATE_API_TOKEN"},
		"qwen": {"DASHSCOPE_API_KEY"},
	}, flux, qwen)

	_, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p"})
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, got %v", err)
	}
	if !reflect.DeepEqual(ce.MissingVars, []string{"REPLICATE_API_TOKEN", "DASHSCOPE_API_KEY"}) {
		t.Fatalf("missing = %v", ce.MissingVars)
	}
	if !errors.Is(err, ErrNoProviderConfigured) {
		t.Fatalf("want ErrNoProviderConfigured in chain")
	}
	if flux.callCount()+qwen.callCount() != 0 {
		t.Fatalf("no adapter may be called")
	}

	if _, err := svc.Generate(context.Background(), GenerateRequest{Prompt: "p", Provider: "dalle"}); !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("unknown provider err = %v", err)
	}
}

func TestHumanFace_UsesIdeogramAndTagsType(t *testing.T) {
	db := newTestDB(t)
	ideo := &fakeAdapter{name: providers.Ideogram, result: completed("https://x/face.png")}
	svc := newGeneration(t, db, reqMap{}, ideo)

	out, err := svc.HumanFace(context.Background(), HumanFaceRequest{
		Face:   prompt.HumanFaceParams{Gender: "woman"},
		UserID: "u1",
	})
	if err != nil {
		t.Fatalf("HumanFace: %v", err)
	}
	if out.Face.Style != "headshot" || out.Face.Gender != "woman" {
		t.Fatalf("defaults not applied: %+v", out.Face)
	}
	o := ideo.calls[0]
	if o.AspectRatio != "3:2" || o.StyleType != "Realistic" || o.MagicPrompt != "On" {
		t.Fatalf("options: %+v", o)
	}

	imgs, err := repo.ListImages(context.Background(), db, repo.ImageFilter{Type: TypeHumanFace})
	if err != nil || len(imgs) != 1 {
		t.Fatalf("human-face images = %v, %v", imgs, err)
	}
}

func TestHumanFace_CustomPrompt(t *testing.T) {
	db := newTestDB(t)
	ideo := &fakeAdapter{name: providers.Ideogram, result: completed("u")}
	svc := newGeneration(t, db, reqMap{}, ideo)

	if _, err := svc.HumanFace(context.Background(), HumanFaceRequest{CustomPrompt: "a pilot"}); err != nil {
		t.Fatalf("HumanFace: %v", err)
	}
	if got := ideo.calls[0].Prompt; !strings.HasPrefix(got, "a pilot, ") {
		t.Fatalf("custom prompt = %q", got)
	}
}

func TestDiversePartner_PassesCharacteristicsSeed(t *testing.T) {
	db := newTestDB(t)
	imagen := &fakeAdapter{name: providers.Imagen, result: completed("u")}
	svc := newGeneration(t, db, reqMap{}, imagen)

	out, err := svc.DiversePartner(context.Background(), DiversePartnerRequest{
		Category:    "business",
		Description: "professional and approachable",
		Style:       prompt.StyleRealistic,
		Gender:      "any",
	})
	if err != nil {
		t.Fatalf("DiversePartner: %v", err)
	}
	o := imagen.calls[0]
	if o.Seed == nil || *o.Seed != out.Characteristics.Seed {
		t.Fatalf("seed = %v, want %d", o.Seed, out.Characteristics.Seed)
	}
	if o.Characteristics == nil || o.Characteristics.Ethnicity != out.Characteristics.Ethnicity {
		t.Fatalf("characteristics not forwarded")
	}
}

func TestPortrait_FoldsAdapterError(t *testing.T) {
	db := newTestDB(t)
	svc := newGeneration(t, db, reqMap{}, &fakeAdapter{name: providers.Gemini, err: errors.New("quota")})

	res, err := svc.Portrait(context.Background(), "gemini", providers.PortraitRequest{
		Name: "Ada", Category: "technology", Style: prompt.StyleRealistic,
	}, "")
	if err != nil {
		t.Fatalf("Portrait: %v", err)
	}
	if res.Completed() || res.Error != "quota" || res.Provider != providers.Gemini {
		t.Fatalf("result = %+v", res)
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newGeneration(t, db, reqMap{}, &fakeAdapter{name: providers.Flux, result: completed("u")})

	for _, p := range []string{"first", "second"} {
		if _, err := svc.Generate(context.Background(), GenerateRequest{Prompt: p, UserID: "u1"}); err != nil {
			t.Fatalf("Generate: %v", err)
		}
	}
	hist, err := svc.History(context.Background(), "u1", 1)
	if err != nil || len(hist) != 1 {
		t.Fatalf("History = %v, %v", hist, err)
	}
}
