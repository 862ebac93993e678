package aggregate

import (
	"testing"

	"github.com/blackcoderx/falcon/pkg/compare"
)

func TestEmitTalliesCounters(t *testing.T) {
	a := New()
	a.Emit(Event{Kind: RouteStarted, Route: "health"})
	a.Emit(Event{Kind: RouteFinished, Route: "health", Class: compare.ClassIdentical})
	a.Emit(Event{Kind: RouteStarted, Route: "health"})
	a.Emit(Event{Kind: RouteFinished, Route: "health", Class: compare.ClassDiffers})

	sum := a.Summary()
	if sum.Overall.Total != 2 || sum.Overall.Passed != 1 || sum.Overall.Differs != 1 {
		t.Fatalf("unexpected overall counters: %+v", sum.Overall)
	}
	if sum.ByRoute["health"].Total != 2 {
		t.Fatalf("unexpected per-route counters: %+v", sum.ByRoute["health"])
	}
}

func TestExitCodeSeverityWins(t *testing.T) {
	s := Summary{Overall: Counters{Differs: 1, Error: 1}}
	if s.ExitCode() != 2 {
		t.Fatalf("expected error to outrank differs, got %d", s.ExitCode())
	}
	s2 := Summary{Overall: Counters{Differs: 1}}
	if s2.ExitCode() != 1 {
		t.Fatalf("expected differs to yield exit 1, got %d", s2.ExitCode())
	}
	s3 := Summary{Overall: Counters{Skipped: 5}}
	if s3.ExitCode() != 0 {
		t.Fatalf("expected skipped-only to yield exit 0, got %d", s3.ExitCode())
	}
}

func TestEventsPreservesEmissionOrder(t *testing.T) {
	a := New()
	a.Emit(Event{Kind: RunStarted})
	a.Emit(Event{Kind: RouteStarted, Route: "r1"})
	a.Emit(Event{Kind: RouteFinished, Route: "r1", Class: compare.ClassIdentical})
	a.Emit(Event{Kind: RunFinished})

	events := a.Events()
	want := []EventKind{RunStarted, RouteStarted, RouteFinished, RunFinished}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Fatalf("event %d: expected %s, got %s", i, k, events[i].Kind)
		}
	}
}
