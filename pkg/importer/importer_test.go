package importer

import (
	"strings"
	"testing"
)

func TestToTOMLRendersRouteTables(t *testing.T) {
	out := ToTOML([]Route{{Name: "get_health", Method: "GET", Path: "/health"}})
	if !strings.Contains(out, `name = "get_health"`) {
		t.Fatalf("expected route name in TOML, got %q", out)
	}
	if !strings.Contains(out, `method = "GET"`) {
		t.Fatalf("expected method in TOML, got %q", out)
	}
}

func TestRouteNameSlugifiesPath(t *testing.T) {
	name := routeName("GET", "/users/{id}/orders")
	if name != "get_users_id_orders" {
		t.Fatalf("unexpected slug: %q", name)
	}
}

func TestFromPostmanExtractsRequests(t *testing.T) {
	doc := `{
		"info": {"name": "demo", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
		"item": [
			{"name": "health", "request": {"method": "GET", "url": {"raw": "http://a/health"}}}
		]
	}`
	routes, err := FromPostman([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 1 || routes[0].Method != "GET" {
		t.Fatalf("unexpected routes: %+v", routes)
	}
}
