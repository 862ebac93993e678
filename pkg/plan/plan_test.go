package plan

import (
	"testing"

	"github.com/blackcoderx/falcon/pkg/config"
)

func names(routes []config.Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Name
	}
	return out
}

func TestOrderRespectsDependencies(t *testing.T) {
	routes := []config.Route{
		{Name: "c", DependsOn: []string{"b"}},
		{Name: "a"},
		{Name: "b", DependsOn: []string{"a"}},
	}
	ordered, err := Order(routes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := names(ordered)
	pos := map[string]int{}
	for i, n := range got {
		pos[n] = i
	}
	if pos["a"] > pos["b"] || pos["b"] > pos["c"] {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestOrderIsStableWithoutDependencies(t *testing.T) {
	routes := []config.Route{{Name: "first"}, {Name: "second"}, {Name: "third"}}
	ordered, err := Order(routes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := names(ordered)
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected declaration order %v, got %v", want, got)
		}
	}
}

func TestOrderRejectsUnknownDependency(t *testing.T) {
	routes := []config.Route{{Name: "a", DependsOn: []string{"ghost"}}}
	_, err := Order(routes)
	if _, ok := err.(*UnknownDependency); !ok {
		t.Fatalf("expected UnknownDependency, got %v", err)
	}
}

func TestOrderRejectsCycle(t *testing.T) {
	routes := []config.Route{
		{Name: "a", DependsOn: []string{"b"}},
		{Name: "b", DependsOn: []string{"a"}},
	}
	_, err := Order(routes)
	if _, ok := err.(*CyclicDependency); !ok {
		t.Fatalf("expected CyclicDependency, got %v", err)
	}
}
