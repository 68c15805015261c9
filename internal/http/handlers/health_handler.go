package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/teammate-generator/internal/config"
)

// ServiceStatus is the readiness of one dependency.
type ServiceStatus struct {
	Configured bool   `json:"configured" example:"true"`
	Status     string `json:"status" example:"ready"`
	Error      string `json:"error,omitempty"`
}

// ConfigurationStatus summarizes required environment variables.
type ConfigurationStatus struct {
	IsValid     bool     `json:"isValid" example:"true"`
	MissingVars []string `json:"missingVars"`
	Message     string   `json:"message" example:"All required environment variables are configured"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string                   `json:"status" example:"ok"`
	Timestamp     time.Time                `json:"timestamp"`
	Environment   string                   `json:"environment" example:"development"`
	Services      map[string]ServiceStatus `json:"services"`
	Configuration ConfigurationStatus      `json:"configuration"`
}

// ProviderStatus describes one provider's configuration.
type ProviderStatus struct {
	Name         string   `json:"name" example:"flux"`
	Configured   bool     `json:"configured" example:"false"`
	RequiredVars []string `json:"requiredVars"`
	MissingVars  []string `json:"missingVars"`
}

// ProvidersResponse is the body of GET /health/providers.
type ProvidersResponse struct {
	Success   bool             `json:"success" example:"true"`
	Providers []ProviderStatus `json:"providers"`
}

// Health godoc
// @ID          health
// @Summary     Readiness summary
// @Description Always 200 while the process serves requests; inspect configuration.isValid for readiness.
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	env := h.health.Env
	check := env.Check()

	services := map[string]ServiceStatus{"database": h.databaseStatus(c.Request.Context())}
	for _, b := range config.BackendNames() {
		services[b] = readyStatus(env.BackendConfigured(b))
	}

	msg := "All required environment variables are configured"
	if !check.IsValid {
		msg = "Missing required environment variables: " + strings.Join(check.MissingVars, ", ")
	}

	ok(c, http.StatusOK, HealthResponse{
		Status:      "ok",
		Timestamp:   h.now(),
		Environment: h.health.Environment,
		Services:    services,
		Configuration: ConfigurationStatus{
			IsValid:     check.IsValid,
			MissingVars: check.MissingVars,
			Message:     msg,
		},
	})
}

// HealthProviders godoc
// @ID          healthProviders
// @Summary     Per-provider configuration
// @Tags        health
// @Produce     json
// @Success     200 {object} ProvidersResponse
// @Router      /health/providers [get]
func (h *Handlers) HealthProviders(c *gin.Context) {
	env := h.health.Env
	names := config.ProviderNames()
	out := make([]ProviderStatus, 0, len(names))
	for _, p := range names {
		missing := env.MissingVars(p)
		if missing == nil {
			missing = []string{}
		}
		out = append(out, ProviderStatus{
			Name:         p,
			Configured:   env.IsConfigured(p),
			RequiredVars: env.RequiredVars(p),
			MissingVars:  missing,
		})
	}
	ok(c, http.StatusOK, ProvidersResponse{Success: true, Providers: out})
}

func (h *Handlers) databaseStatus(ctx context.Context) ServiceStatus {
	st := readyStatus(h.health.Env.DatabaseConfigured())
	if !st.Configured || h.health.Ping == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.health.Ping(ctx); err != nil {
		st.Status = "unreachable"
		st.Error = err.Error()
	}
	return st
}

func readyStatus(configured bool) ServiceStatus {
	if configured {
		return ServiceStatus{Configured: true, Status: "ready"}
	}
	return ServiceStatus{Configured: false, Status: "not configured"}
}
