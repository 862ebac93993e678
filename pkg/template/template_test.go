package template

import "testing"

func TestSubstituteBasic(t *testing.T) {
	out, err := Substitute("/users/{id}/profile", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "/users/42/profile" {
		t.Errorf("got %q", out)
	}
}

func TestSubstituteEscapedBraces(t *testing.T) {
	out, err := Substitute("{{literal}} and {name}", map[string]string{"name": "world"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "{literal} and world" {
		t.Errorf("got %q", out)
	}
}

func TestSubstituteUnresolved(t *testing.T) {
	_, err := Substitute("{missing}", map[string]string{})
	if err == nil {
		t.Fatal("expected an UnresolvedPlaceholderError")
	}
	upe, ok := err.(*UnresolvedPlaceholderError)
	if !ok {
		t.Fatalf("expected *UnresolvedPlaceholderError, got %T", err)
	}
	if upe.Name != "missing" {
		t.Errorf("expected name %q, got %q", "missing", upe.Name)
	}
}

func TestSubstitutePathEncodes(t *testing.T) {
	out, err := SubstitutePath("/search/{q}", map[string]string{"q": "a b/c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "/search/a%20b%2Fc" {
		t.Errorf("got %q", out)
	}
}
