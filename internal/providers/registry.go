package providers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tbourn/teammate-generator/internal/config"
	"github.com/tbourn/teammate-generator/internal/prompt"
)

// Precedence is the order tried when a request names no provider. It is
// read from config.ProviderNames, which also drives the environment check.
var Precedence = precedence()

func precedence() []Name {
	names := config.ProviderNames()
	out := make([]Name, len(names))
	for i, n := range names {
		out[i] = Name(n)
	}
	return out
}

var (
	// ErrUnknownProvider is returned for a provider name outside Precedence.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrNoProviderConfigured is wrapped by a ConfigError without a Provider.
	ErrNoProviderConfigured = errors.New("no image provider configured")
)

// ConfigError reports the environment variables a provider is missing.
// Provider is empty when no provider at all is usable.
type ConfigError struct {
	Provider    Name
	MissingVars []string
}

func (e *ConfigError) Error() string {
	if e.Provider == "" {
		return "no image provider configured: missing " + strings.Join(e.MissingVars, ", ")
	}
	return fmt.Sprintf("provider %s not configured: missing %s", e.Provider, strings.Join(e.MissingVars, ", "))
}

func (e *ConfigError) Unwrap() error {
	if e.Provider == "" {
		return ErrNoProviderConfigured
	}
	return nil
}

// Requirements reports unset variables per provider name. config.Config
// satisfies it.
type Requirements interface {
	MissingVars(provider string) []string
}

// Registry holds the adapters built at startup and picks one per request.
type Registry struct {
	adapters map[Name]Adapter
	req      Requirements
	def      Name
}

// NewRegistry registers adapters by their Name. def, when non-empty, is used
// instead of the precedence walk for requests that name no provider.
func NewRegistry(req Requirements, def Name, adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[Name]Adapter, len(adapters)), req: req, def: def}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Get returns the adapter registered under n.
func (r *Registry) Get(n Name) (Adapter, bool) {
	a, ok := r.adapters[n]
	return a, ok
}

// Missing returns the variables n needs but lacks.
func (r *Registry) Missing(n Name) []string {
	if r.req == nil {
		return nil
	}
	return r.req.MissingVars(string(n))
}

// Select resolves the adapter for a request. An explicit name must be known
// and configured. Without one the default provider applies, else the first
// configured provider in Precedence. Failures are ErrUnknownProvider or
// *ConfigError.
func (r *Registry) Select(requested string) (Adapter, error) {
	name := Name(strings.TrimSpace(requested))
	if name == "" {
		name = r.def
	}
	if name != "" {
		a, ok := r.adapters[name]
		if !ok || !isKnown(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
		}
		if missing := r.Missing(name); len(missing) > 0 {
			return nil, &ConfigError{Provider: name, MissingVars: missing}
		}
		return a, nil
	}

	seen := map[string]bool{}
	var union []string
	for _, n := range Precedence {
		a, ok := r.adapters[n]
		if !ok {
			continue
		}
		missing := r.Missing(n)
		if len(missing) == 0 {
			return a, nil
		}
		for _, v := range missing {
			if !seen[v] {
				seen[v] = true
				union = append(union, v)
			}
		}
	}
	return nil, &ConfigError{MissingVars: union}
}

// PortraitOptions returns the adapter's own teammate portrait options, or a
// composed portrait prompt when the adapter has none.
func PortraitOptions(a Adapter, req PortraitRequest) Options {
	if p, ok := a.(Portraitist); ok {
		return p.PortraitOptions(req)
	}
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

func isKnown(n Name) bool { return config.IsKnownProvider(string(n)) }
