package config

// Environment variable names checked before a generation is attempted.
const (
	EnvReplicateToken  = "REPLICATE_API_TOKEN"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvDashScopeAPIKey = "DASHSCOPE_API_KEY"
	EnvDatabaseURL     = "DATABASE_URL"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// providerPrecedence is the order tried when a request names no provider.
var providerPrecedence = []string{"flux", "ideogram", "imagen", "gemini", "qwen"}

// providerRequirements maps a provider name to the variables it needs.
var providerRequirements = map[string][]string{
	"flux":     {EnvReplicateToken},
	"ideogram": {EnvReplicateToken},
	"imagen":   {EnvGeminiAPIKey},
	"gemini":   {EnvGeminiAPIKey},
	"qwen":     {EnvDashScopeAPIKey},
}

// backendVars maps each upstream API to its credential, in health report
// order. Several providers can share one backend.
var backendVars = []struct{ name, env string }{
	{"replicate", EnvReplicateToken},
	{"gemini", EnvGeminiAPIKey},
	{"dashscope", EnvDashScopeAPIKey},
}

// EnvCheck summarizes whether the service can generate anything at all.
type EnvCheck struct {
	IsValid     bool     `json:"isValid"`
	MissingVars []string `json:"missingVars"`
}

// ProviderNames returns the known provider names in precedence order.
func ProviderNames() []string {
	out := make([]string, len(providerPrecedence))
	copy(out, providerPrecedence)
	return out
}

// BackendNames returns the upstream APIs reported by the health check.
func BackendNames() []string {
	out := make([]string, 0, len(backendVars))
	for _, b := range backendVars {
		out = append(out, b.name)
	}
	return out
}

// BackendConfigured reports whether the credential of backend is set.
func (c Config) BackendConfigured(backend string) bool {
	for _, b := range backendVars {
		if b.name == backend {
			return c.value(b.env) != ""
		}
	}
	return false
}

// IsKnownProvider reports whether name is a supported provider.
func IsKnownProvider(name string) bool {
	_, ok := providerRequirements[name]
	return ok
}

// RequiredVars lists every variable the provider needs, including database
// requirements of the selected driver.
func (c Config) RequiredVars(provider string) []string {
	req := append([]string(nil), providerRequirements[provider]...)
	if c.DB.Driver == DriverPostgres {
		req = append(req, EnvDatabaseURL)
	}
	return req
}

// MissingVars returns the required variables for provider that are unset.
// An unknown provider yields nil; callers validate the name separately.
func (c Config) MissingVars(provider string) []string {
	if !IsKnownProvider(provider) {
		return nil
	}
	var missing []string
	for _, name := range c.RequiredVars(provider) {
		if c.value(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsConfigured reports whether provider can be called.
func (c Config) IsConfigured(provider string) bool {
	return IsKnownProvider(provider) && len(c.MissingVars(provider)) == 0
}

// DatabaseConfigured reports whether the selected driver has what it needs.
func (c Config) DatabaseConfigured() bool {
	if c.DB.Driver == DriverPostgres {
		return c.DB.URL != ""
	}
	return c.DB.Path != ""
}

// Check reports overall readiness: the database must be configured and at
// least one provider must be usable. When nothing is usable, the union of
// missing variables is returned in precedence order without duplicates.
func (c Config) Check() EnvCheck {
	seen := map[string]bool{}
	var missing []string
	add := func(names ...string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				missing = append(missing, n)
			}
		}
	}

	if !c.DatabaseConfigured() && c.DB.Driver == DriverPostgres {
		add(EnvDatabaseURL)
	}
	anyProvider := false
	for _, p := range providerPrecedence {
		if len(providerMissing(c, p)) == 0 {
			anyProvider = true
			break
		}
	}
	if !anyProvider {
		for _, p := range providerPrecedence {
			add(providerMissing(c, p)...)
		}
	}
	if missing == nil {
		missing = []string{}
	}
	return EnvCheck{IsValid: len(missing) == 0, MissingVars: missing}
}

// providerMissing ignores database requirements.
func providerMissing(c Config, provider string) []string {
	var out []string
	for _, name := range providerRequirements[provider] {
		if c.value(name) == "" {
			out = append(out, name)
		}
	}
	return out
}

func (c Config) value(name string) string {
	switch name {
	case EnvReplicateToken:
		return c.Providers.ReplicateToken
	case EnvGeminiAPIKey:
		return c.Providers.GeminiAPIKey
	case EnvDashScopeAPIKey:
		return c.Providers.DashScopeAPIKey
	case EnvDatabaseURL:
		return c.DB.URL
	default:
		return ""
	}
}
