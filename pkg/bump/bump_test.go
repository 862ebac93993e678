package bump

import "testing"

func TestNextPatch(t *testing.T) {
	v, err := Next("1.2.3", Patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "1.2.4" {
		t.Fatalf("expected 1.2.4, got %s", v)
	}
}

func TestNextMajorResetsMinorAndPatch(t *testing.T) {
	v, err := Next("1.2.3", Major)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "2.0.0" {
		t.Fatalf("expected 2.0.0, got %s", v)
	}
}

func TestNextRejectsInvalidVersion(t *testing.T) {
	if _, err := Next("not-a-version", Patch); err == nil {
		t.Fatal("expected an error for an invalid version")
	}
}
