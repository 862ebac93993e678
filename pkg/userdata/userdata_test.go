package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.csv")
	contents := "userType,name\nbasic,Alice\npremium,Bob\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["userType"] != "basic" || rows[0]["name"] != "Alice" {
		t.Errorf("unexpected row 0: %+v", rows[0])
	}
	if rows[1]["userType"] != "premium" {
		t.Errorf("unexpected row 1: %+v", rows[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.csv"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
