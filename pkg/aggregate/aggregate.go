// Package aggregate implements spec.md §4.8: per-route and run-wide
// counters and a totally-ordered (per producer) progress event stream
// consumed by renderers. Counters are not kept per environment.
package aggregate

import (
	"sync"

	"github.com/blackcoderx/falcon/pkg/compare"
)

// EventKind is the closed set of progress events from spec.md §4.8.
type EventKind string

const (
	RunStarted    EventKind = "RunStarted"
	RouteStarted  EventKind = "RouteStarted"
	RouteFinished EventKind = "RouteFinished"
	RunFinished   EventKind = "RunFinished"
)

// Event is one progress notification. Fields not relevant to Kind are left
// zero-valued.
type Event struct {
	Kind        EventKind
	Row         int
	Environment string
	Route       string
	Class       compare.Class
	Cause       string
	Summary     Summary
}

// Counters tallies RouteFinished outcomes for one route, or for the whole
// run (Summary.Overall); there is no per-environment breakdown.
type Counters struct {
	Total    int
	Passed   int
	Differs  int
	Error    int
	Skipped  int
}

// Summary is the run-wide rollup handed to RunFinished and to renderers
// that only care about the final state.
type Summary struct {
	ByRoute map[string]Counters
	Overall Counters
}

// Aggregator is the process-scoped, non-singleton object a single run owns
// (spec.md §9's "no global state" design note): it serializes event
// ingestion behind a mutex so concurrent route tasks can report safely.
type Aggregator struct {
	mu      sync.Mutex
	events  []Event
	summary Summary
	onEvent func(Event)
}

// New creates an aggregator with an empty summary.
func New() *Aggregator {
	return &Aggregator{summary: Summary{ByRoute: make(map[string]Counters)}}
}

// OnEvent registers a callback invoked synchronously from Emit, after the
// event is recorded, so an incremental renderer (e.g. the TUI) can receive
// events as they happen rather than polling Events().
func (a *Aggregator) OnEvent(fn func(Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = fn
}

// Emit records an event and, for RouteFinished, folds its class into the
// running counters. It is safe for concurrent use by many route tasks.
func (a *Aggregator) Emit(ev Event) {
	a.mu.Lock()
	a.events = append(a.events, ev)
	cb := a.onEvent
	a.mu.Unlock()

	if cb != nil {
		cb(ev)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if ev.Kind != RouteFinished {
		return
	}

	c := a.summary.ByRoute[ev.Route]
	c.Total++
	a.summary.Overall.Total++

	switch ev.Class {
	case compare.ClassIdentical:
		c.Passed++
		a.summary.Overall.Passed++
	case compare.ClassDiffers:
		c.Differs++
		a.summary.Overall.Differs++
	case compare.ClassError:
		c.Error++
		a.summary.Overall.Error++
	case compare.ClassSkipped:
		c.Skipped++
		a.summary.Overall.Skipped++
	}

	a.summary.ByRoute[ev.Route] = c
}

// Events returns a snapshot of every event recorded so far, in emission
// order.
func (a *Aggregator) Events() []Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// Summary returns a snapshot of the current counters.
func (a *Aggregator) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	byRoute := make(map[string]Counters, len(a.summary.ByRoute))
	for k, v := range a.summary.ByRoute {
		byRoute[k] = v
	}
	return Summary{ByRoute: byRoute, Overall: a.summary.Overall}
}

// ExitCode implements spec.md §6's severity-wins exit code policy: 0 when
// everything is identical or skipped, 1 if anything differs, 2 if anything
// errored. Cancellation (130) is decided by the caller, which knows whether
// the run was aborted.
func (s Summary) ExitCode() int {
	switch {
	case s.Overall.Error > 0:
		return 2
	case s.Overall.Differs > 0:
		return 1
	default:
		return 0
	}
}
