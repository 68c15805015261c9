package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tbourn/teammate-generator/internal/config"
)

func TestHealth_MissingConfiguration(t *testing.T) {
	cfg := config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, Path: "data/app.db"}}
	r := newRouter(t, deps{health: HealthDeps{Env: cfg, Environment: "test"}})

	w := do(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	resp := decode[HealthResponse](t, w)
	if resp.Status != "ok" || resp.Environment != "test" || resp.Configuration.IsValid {
		t.Fatalf("unexpected body: %+v", resp)
	}
	want := "Missing required environment variables: REPLICATE_API_TOKEN, GEMINI_API_KEY, DASHSCOPE_API_KEY"
	if resp.Configuration.Message != want {
		t.Fatalf("message=%q", resp.Configuration.Message)
	}
	if db := resp.Services["database"]; !db.Configured || db.Status != "ready" {
		t.Fatalf("database=%+v", db)
	}
	for _, b := range []string{"replicate", "gemini", "dashscope"} {
		if st := resp.Services[b]; st.Configured || st.Status != "not configured" {
			t.Fatalf("%s=%+v", b, st)
		}
	}
}

func TestHealth_ValidAndPingFailure(t *testing.T) {
	cfg := config.Config{
		DB:        config.DBConfig{Driver: config.DriverSQLite, Path: "data/app.db"},
		Providers: config.ProviderConfig{GeminiAPIKey: "k"},
	}
	ping := func(context.Context) error { return errors.New("database is locked") }
	r := newRouter(t, deps{health: HealthDeps{Env: cfg, Ping: ping}})

	resp := decode[HealthResponse](t, do(r, http.MethodGet, "/health", ""))
	if !resp.Configuration.IsValid || resp.Configuration.Message != "All required environment variables are configured" {
		t.Fatalf("configuration=%+v", resp.Configuration)
	}
	if len(resp.Configuration.MissingVars) != 0 {
		t.Fatalf("missingVars=%v", resp.Configuration.MissingVars)
	}
	if db := resp.Services["database"]; db.Status != "unreachable" || db.Error == "" {
		t.Fatalf("database=%+v", db)
	}
	if g := resp.Services["gemini"]; !g.Configured || g.Status != "ready" {
		t.Fatalf("gemini=%+v", g)
	}
	if rep := resp.Services["replicate"]; rep.Configured {
		t.Fatalf("replicate=%+v", rep)
	}
}

func TestHealthProviders(t *testing.T) {
	cfg := config.Config{
		DB:        config.DBConfig{Driver: config.DriverPostgres},
		Providers: config.ProviderConfig{ReplicateToken: "r"},
	}
	r := newRouter(t, deps{health: HealthDeps{Env: cfg}})

	resp := decode[ProvidersResponse](t, do(r, http.MethodGet, "/health/providers", ""))
	if len(resp.Providers) != 5 {
		t.Fatalf("providers=%+v", resp.Providers)
	}
	flux := resp.Providers[0]
	if flux.Name != "flux" || flux.Configured {
		t.Fatalf("flux=%+v", flux)
	}
	if len(flux.MissingVars) != 1 || flux.MissingVars[0] != config.EnvDatabaseURL {
		t.Fatalf("flux missing=%v", flux.MissingVars)
	}
	if len(flux.RequiredVars) != 2 {
		t.Fatalf("flux required=%v", flux.RequiredVars)
	}
}
