// Package services implements image generation, teammate creation and
// visitor analytics on top of the repo and providers packages.
//
// This file centralizes service-level error values. Translation into HTTP
// status codes happens in the handlers.
package services

import (
	"errors"

	"github.com/tbourn/teammate-generator/internal/providers"
)

var (
	// ErrUnknownProvider is returned when a request names a provider that is
	// not supported.
	ErrUnknownProvider = providers.ErrUnknownProvider

	// ErrNoProviderConfigured is wrapped by a ConfigError when no provider at
	// all has its credentials.
	ErrNoProviderConfigured = providers.ErrNoProviderConfigured

	// ErrUnknownAction is returned by the analytics stats action dispatcher.
	ErrUnknownAction = errors.New("unknown action")
)

// ConfigError lists the environment variables missing for a provider.
// Match it with errors.As.
type ConfigError = providers.ConfigError
