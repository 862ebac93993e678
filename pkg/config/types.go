// Package config models the httpdiff engine's TOML configuration: global
// knobs, environments, and routes. Loading is delegated to Viper (see
// load.go); this file only describes the shape the engine operates on.
package config

// Config is the fully loaded, immutable configuration for a diff run.
type Config struct {
	Global       Global
	Environments map[string]Environment
	Routes       []Route
}

// Global holds run-wide knobs from the [global] table.
type Global struct {
	TimeoutSeconds  int               `mapstructure:"timeout"`
	MaxConcurrent   int               `mapstructure:"max_concurrent"`
	FollowRedirects bool              `mapstructure:"follow_redirects"`
	Headers         map[string]string `mapstructure:"headers"`
	IncludeHeaders  bool              `mapstructure:"include_headers"`
	IgnoreHeaders   []string          `mapstructure:"ignore_headers"`
	RawSubstitution bool              `mapstructure:"raw_substitution"`
	MaxBodyBytes    int64             `mapstructure:"max_body_bytes"`
}

// rawGlobal mirrors Global but with tri-state pointers for fields whose
// documented default is non-zero, so Load can tell "absent" from "false"/"0".
type rawGlobal struct {
	TimeoutSeconds  *int              `mapstructure:"timeout"`
	MaxConcurrent   *int              `mapstructure:"max_concurrent"`
	FollowRedirects *bool             `mapstructure:"follow_redirects"`
	Headers         map[string]string `mapstructure:"headers"`
	IncludeHeaders  bool              `mapstructure:"include_headers"`
	IgnoreHeaders   []string          `mapstructure:"ignore_headers"`
	RawSubstitution bool              `mapstructure:"raw_substitution"`
	MaxBodyBytes    int64             `mapstructure:"max_body_bytes"`
}

// DefaultIgnoreHeaders is the header-ignore list applied to comparisons
// when [global] ignore_headers is not set. Resolves spec.md §9's open
// question on header-ignore defaults.
var DefaultIgnoreHeaders = []string{"Date", "Server", "X-Request-Id", "Set-Cookie"}

// Environment is a named comparison target.
type Environment struct {
	Name    string
	BaseURL string            `mapstructure:"base_url"`
	Headers map[string]string `mapstructure:"headers"`
	OAuth2  *OAuth2Config     `mapstructure:"oauth2"`
}

// OAuth2Config describes a client-credentials token acquisition performed
// once per run and folded into the environment's headers before any route
// executes. See pkg/config/oauth2.go.
type OAuth2Config struct {
	TokenURL     string   `mapstructure:"token_url"`
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	Scopes       []string `mapstructure:"scopes"`
	HeaderName   string   `mapstructure:"header_name"`
}

// Route is a named HTTP request template exercised against every selected
// environment.
type Route struct {
	Name               string
	Method             string            `mapstructure:"method"`
	Path               string            `mapstructure:"path"`
	Headers            map[string]string `mapstructure:"headers"`
	Body               string            `mapstructure:"body"`
	DependsOn          []string          `mapstructure:"depends_on"`
	WaitForExtraction  bool              `mapstructure:"wait_for_extraction"`
	Extract            []ExtractRule     `mapstructure:"extract"`
	Conditions         []Condition       `mapstructure:"conditions"`
	ResponseSchemaFile string            `mapstructure:"response_schema"`
}

// ExtractKind is the closed set of extraction strategies, per spec.md §4.3.
type ExtractKind string

const (
	ExtractJSONPath   ExtractKind = "json_path"
	ExtractRegex      ExtractKind = "regex"
	ExtractHeader     ExtractKind = "header"
	ExtractStatusCode ExtractKind = "status_code"
)

// ExtractRule pulls one named value out of a response.
type ExtractRule struct {
	Name         string      `mapstructure:"name"`
	Type         ExtractKind `mapstructure:"type"`
	Source       string      `mapstructure:"source"`
	Required     bool        `mapstructure:"required"`
	DefaultValue string      `mapstructure:"default_value"`
}

// rawExtractRule mirrors ExtractRule with a tri-state Required so Load can
// apply spec.md §6's "required (bool, default true)" only when absent.
type rawExtractRule struct {
	Name         string      `mapstructure:"name"`
	Type         ExtractKind `mapstructure:"type"`
	Source       string      `mapstructure:"source"`
	Required     *bool       `mapstructure:"required"`
	DefaultValue string      `mapstructure:"default_value"`
}

// ConditionOperator is the closed set of condition predicates, per
// spec.md §4.4.
type ConditionOperator string

const (
	OpEquals      ConditionOperator = "equals"
	OpNotEquals   ConditionOperator = "not_equals"
	OpContains    ConditionOperator = "contains"
	OpNotContains ConditionOperator = "not_contains"
	OpGreaterThan ConditionOperator = "greater_than"
	OpLessThan    ConditionOperator = "less_than"
	OpExists      ConditionOperator = "exists"
	OpNotExists   ConditionOperator = "not_exists"
)

// Condition is one predicate in a route's (AND-combined) condition list.
type Condition struct {
	Field    string            `mapstructure:"field"`
	Operator ConditionOperator `mapstructure:"operator"`
	Value    string            `mapstructure:"value"`
}
