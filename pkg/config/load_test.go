package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "httpdiff.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
[environments.a]
base_url = "http://a"

[environments.b]
base_url = "http://b"

[[routes]]
name = "health"
path = "/h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Global.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.Global.TimeoutSeconds)
	}
	if cfg.Global.MaxConcurrent != 10 {
		t.Errorf("expected default max_concurrent 10, got %d", cfg.Global.MaxConcurrent)
	}
	if !cfg.Global.FollowRedirects {
		t.Errorf("expected follow_redirects to default true")
	}
	if len(cfg.Routes) != 1 || cfg.Routes[0].Method != "GET" {
		t.Fatalf("expected route method to default to GET, got %+v", cfg.Routes)
	}
}

func TestLoadRejectsNoEnvironments(t *testing.T) {
	path := writeTempConfig(t, `
[[routes]]
name = "health"
path = "/h"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a config with no environments")
	}
}

func TestLoadRejectsDuplicateRouteNames(t *testing.T) {
	path := writeTempConfig(t, `
[environments.a]
base_url = "http://a"

[[routes]]
name = "health"
path = "/h1"

[[routes]]
name = "health"
path = "/h2"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for duplicate route names")
	}
}

func TestExtractRequiredDefaultsTrue(t *testing.T) {
	path := writeTempConfig(t, `
[environments.a]
base_url = "http://a"

[[routes]]
name = "login"
path = "/auth"

  [[routes.extract]]
  name = "token"
  type = "json_path"
  source = "$.t"

  [[routes.extract]]
  name = "optional_thing"
  type = "header"
  source = "X-Thing"
  required = false
  default_value = "none"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	extract := cfg.Routes[0].Extract
	if !extract[0].Required {
		t.Errorf("expected first extract rule to default required=true")
	}
	if extract[1].Required {
		t.Errorf("expected second extract rule to honor required=false")
	}
	if extract[1].DefaultValue != "none" {
		t.Errorf("expected default_value to be preserved, got %q", extract[1].DefaultValue)
	}
}
