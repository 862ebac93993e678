package changelog

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAddReleasePrependsNewest(t *testing.T) {
	doc := &Document{Releases: []Release{{Version: "1.0.0"}}}
	doc.AddRelease("1.1.0", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), []Entry{
		{Kind: "added", Summary: "environment-level oauth2"},
	})

	if len(doc.Releases) != 2 || doc.Releases[0].Version != "1.1.0" {
		t.Fatalf("expected new release first, got %+v", doc.Releases)
	}
	if doc.Releases[0].Date != "2026-01-02" {
		t.Fatalf("unexpected date: %s", doc.Releases[0].Date)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.yaml")
	doc := &Document{}
	doc.AddRelease("1.0.0", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), []Entry{
		{Kind: "added", Summary: "initial release"},
	})
	if err := Save(path, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Releases) != 1 || loaded.Releases[0].Version != "1.0.0" {
		t.Fatalf("unexpected round trip: %+v", loaded.Releases)
	}
}

func TestLoadMissingFileReturnsEmptyDocument(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Releases) != 0 {
		t.Fatalf("expected empty document, got %+v", doc)
	}
}
