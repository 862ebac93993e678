// Package plan implements spec.md §4.5: turning a route list's depends_on
// declarations into a single, deterministic execution order.
package plan

import (
	"fmt"

	"github.com/blackcoderx/falcon/pkg/config"
)

// UnknownDependency is returned when a route's depends_on names a route
// that does not exist in the config.
type UnknownDependency struct {
	Route      string
	DependsOn string
}

func (e *UnknownDependency) Error() string {
	return fmt.Sprintf("route %q depends on unknown route %q", e.Route, e.DependsOn)
}

// CyclicDependency is returned when depends_on edges form a cycle.
type CyclicDependency struct {
	Cycle []string
}

func (e *CyclicDependency) Error() string {
	return fmt.Sprintf("dependency cycle detected: %v", e.Cycle)
}

// Order returns routes in a stable, dependency-respecting execution order:
// every route appears after everything it depends_on, ties broken by
// declaration order (spec.md §4.5's determinism requirement). A depth-first
// walk first rejects cycles; the order itself always takes the
// earliest-declared route whose dependencies are already placed.
func Order(routes []config.Route) ([]config.Route, error) {
	index := make(map[string]int, len(routes))
	for i, r := range routes {
		index[r.Name] = i
	}
	for _, r := range routes {
		for _, dep := range r.DependsOn {
			if _, ok := index[dep]; !ok {
				return nil, &UnknownDependency{Route: r.Name, DependsOn: dep}
			}
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := make([]int, len(routes))
	ordered := make([]config.Route, 0, len(routes))

	var visit func(i int, path []string) error
	visit = func(i int, path []string) error {
		switch state[i] {
		case black:
			return nil
		case gray:
			return &CyclicDependency{Cycle: append(append([]string{}, path...), routes[i].Name)}
		}

		state[i] = gray
		path = append(path, routes[i].Name)

		for _, dep := range routes[i].DependsOn {
			if err := visit(index[dep], path); err != nil {
				return err
			}
		}

		state[i] = black
		ordered = append(ordered, routes[i])
		return nil
	}

	for i := range routes {
		if state[i] == white {
			if err := visit(i, nil); err != nil {
				return nil, err
			}
		}
	}

	// The graph is acyclic; repeatedly place the earliest-declared route
	// whose dependencies are all placed.
	placed := make([]bool, len(routes))
	final := make([]config.Route, 0, len(ordered))
	for len(final) < len(routes) {
		for i, r := range routes {
			ready := !placed[i]
			for _, dep := range r.DependsOn {
				ready = ready && placed[index[dep]]
			}
			if ready {
				placed[i] = true
				final = append(final, r)
				break
			}
		}
	}

	return final, nil
}
