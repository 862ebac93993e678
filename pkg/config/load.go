package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// rawRoute mirrors Route for decoding, using rawExtractRule so per-rule
// "required" defaults can be told apart from an explicit false.
type rawRoute struct {
	Name               string            `mapstructure:"name"`
	Method             string            `mapstructure:"method"`
	Path               string            `mapstructure:"path"`
	Headers            map[string]string `mapstructure:"headers"`
	Body               string            `mapstructure:"body"`
	DependsOn          []string          `mapstructure:"depends_on"`
	WaitForExtraction  bool              `mapstructure:"wait_for_extraction"`
	Extract            []rawExtractRule  `mapstructure:"extract"`
	Conditions         []Condition       `mapstructure:"conditions"`
	ResponseSchemaFile string            `mapstructure:"response_schema"`
}

type rawConfig struct {
	Global       rawGlobal              `mapstructure:"global"`
	Environments map[string]Environment `mapstructure:"environments"`
	Routes       []rawRoute             `mapstructure:"routes"`
}

// Load reads a TOML config file from path using Viper (TOML parsing itself
// is delegated to Viper's embedded go-toml, per spec.md §1's non-goal on
// config loading) and applies spec.md §6's documented defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	cfg := &Config{
		Global:       applyGlobalDefaults(raw.Global),
		Environments: make(map[string]Environment, len(raw.Environments)),
		Routes:       make([]Route, 0, len(raw.Routes)),
	}

	for name, env := range raw.Environments {
		env.Name = name
		cfg.Environments[name] = env
	}

	for _, rr := range raw.Routes {
		cfg.Routes = append(cfg.Routes, applyRouteDefaults(rr))
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyGlobalDefaults(raw rawGlobal) Global {
	g := Global{
		Headers:         raw.Headers,
		IncludeHeaders:  raw.IncludeHeaders,
		IgnoreHeaders:   raw.IgnoreHeaders,
		RawSubstitution: raw.RawSubstitution,
		MaxBodyBytes:    raw.MaxBodyBytes,
	}

	g.TimeoutSeconds = 30
	if raw.TimeoutSeconds != nil {
		g.TimeoutSeconds = *raw.TimeoutSeconds
	}

	g.MaxConcurrent = 10
	if raw.MaxConcurrent != nil {
		g.MaxConcurrent = *raw.MaxConcurrent
	}

	g.FollowRedirects = true
	if raw.FollowRedirects != nil {
		g.FollowRedirects = *raw.FollowRedirects
	}

	if len(g.IgnoreHeaders) == 0 {
		g.IgnoreHeaders = DefaultIgnoreHeaders
	}

	if g.MaxBodyBytes == 0 {
		g.MaxBodyBytes = 5 * 1024 * 1024
	}

	return g
}

func applyRouteDefaults(raw rawRoute) Route {
	r := Route{
		Name:               raw.Name,
		Method:             raw.Method,
		Path:               raw.Path,
		Headers:            raw.Headers,
		Body:               raw.Body,
		DependsOn:          raw.DependsOn,
		WaitForExtraction:  raw.WaitForExtraction,
		Conditions:         raw.Conditions,
		ResponseSchemaFile: raw.ResponseSchemaFile,
	}

	if r.Method == "" {
		r.Method = "GET"
	}

	r.Extract = make([]ExtractRule, 0, len(raw.Extract))
	for _, re := range raw.Extract {
		rule := ExtractRule{
			Name:         re.Name,
			Type:         re.Type,
			Source:       re.Source,
			DefaultValue: re.DefaultValue,
			Required:     true,
		}
		if re.Required != nil {
			rule.Required = *re.Required
		}
		r.Extract = append(r.Extract, rule)
	}

	return r
}
