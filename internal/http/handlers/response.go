// Package handlers provides the HTTP handlers of the public API.
//
// This file defines the response envelopes and the helpers that write them.
// Success bodies are {"success": true, "data": ...} plus endpoint-specific
// fields; error bodies are always ErrorResponse.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/teammate-generator/internal/http/middleware"
	"github.com/tbourn/teammate-generator/internal/services"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	Success bool `json:"success" example:"false"`
	// Correlates server logs and client errors
	RequestID string `json:"requestId,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"validation_failed"`
	// Human-readable message
	Error string `json:"error" example:"Invalid request data"`
	// Field errors (validation) or upstream message (service errors)
	Details any `json:"details,omitempty" swaggertype:"object"`
	// Environment variables that must be set (503 only)
	MissingVars []string `json:"missingVars,omitempty"`
	// Provider that was selected, when known
	Provider string `json:"provider,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field" example:"prompt"`
	Rule    string `json:"rule" example:"max"`
	Param   string `json:"param,omitempty" example:"1000"`
	Message string `json:"message" example:"prompt must be at most 1000 characters"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Visit tracked successfully"`
}

// fail aborts with an ErrorResponse. 5xx responses are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, ErrorResponse{Code: code, Error: msg})
}

func failWith(c *gin.Context, status int, resp ErrorResponse) {
	resp.Success = false
	resp.RequestID = middleware.RequestIDFrom(c)

	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", resp.Code).
			Str("message", resp.Error)
		if d, ok := resp.Details.(string); ok {
			ev = ev.Str("details", d)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail for the router (404/405 handlers).
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// invalid answers 400 for a bind failure, listing field errors when the
// validator produced them.
func invalid(c *gin.Context, err error) { invalidAs(c, err, "Invalid request data") }

func invalidAs(c *gin.Context, err error, msg string) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		failWith(c, http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeBadRequest,
			Error:   msg,
			Details: err.Error(),
		})
		return
	}
	details := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(fe),
		})
	}
	failWith(c, http.StatusBadRequest, ErrorResponse{
		Code:    ErrCodeValidation,
		Error:   msg,
		Details: details,
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// serviceFail maps orchestrator errors: unknown provider → 400, missing
// configuration → 503 with missingVars, anything else → 500 with msg.
func serviceFail(c *gin.Context, err error, msg, provider string) {
	var ce *services.ConfigError
	switch {
	case errors.Is(err, services.ErrUnknownProvider):
		failWith(c, http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeBadRequest,
			Error:   "Unsupported provider",
			Details: err.Error(),
		})
	case errors.As(err, &ce):
		p := provider
		if ce.Provider != "" {
			p = string(ce.Provider)
		}
		failWith(c, http.StatusServiceUnavailable, ErrorResponse{
			Code:        ErrCodeNotConfigured,
			Error:       "Service not properly configured",
			Details:     "Missing environment variables: " + strings.Join(ce.MissingVars, ", "),
			MissingVars: ce.MissingVars,
			Provider:    p,
		})
	default:
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:     ErrCodeService,
			Error:    msg,
			Details:  err.Error(),
			Provider: provider,
		})
	}
}
