package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSchema(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "schema.json")
	doc := `{"type":"object","required":["id"],"properties":{"id":{"type":"integer"}}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write schema fixture: %v", err)
	}
	return path
}

func TestValidatePasses(t *testing.T) {
	path := writeSchema(t, t.TempDir())
	if err := Validate("me", path, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("expected valid body, got %v", err)
	}
}

func TestValidateReportsViolation(t *testing.T) {
	path := writeSchema(t, t.TempDir())
	err := Validate("me", path, []byte(`{"name":"no id"}`))
	if err == nil {
		t.Fatal("expected a violation error")
	}
	v, ok := err.(*Violation)
	if !ok {
		t.Fatalf("expected *Violation, got %T", err)
	}
	if len(v.Errors) == 0 {
		t.Fatal("expected at least one schema error")
	}
}

func TestValidateMissingFileIsConfigError(t *testing.T) {
	err := Validate("me", filepath.Join(t.TempDir(), "missing.json"), []byte(`{}`))
	if err == nil {
		t.Fatal("expected an error for a missing schema file")
	}
	if _, ok := err.(*Violation); ok {
		t.Fatal("a missing schema file is a config problem, not a Violation")
	}
}
