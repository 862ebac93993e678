package config

import (
	"fmt"
	"os"
)

// Validate enforces spec.md §3's naming-uniqueness invariants that are
// cheap to check without building the dependency graph (cycle detection
// and unknown-dependency checks live in pkg/plan, which runs right after
// a config loads successfully).
func Validate(cfg *Config) error {
	if len(cfg.Environments) == 0 {
		return errorf("config: at least one [environments.<name>] table is required")
	}

	seenRoutes := make(map[string]bool, len(cfg.Routes))
	for _, r := range cfg.Routes {
		if r.Name == "" {
			return errorf("config: route is missing a name")
		}
		if seenRoutes[r.Name] {
			return errorf("config: duplicate route name %q", r.Name)
		}
		seenRoutes[r.Name] = true

		if r.Path == "" {
			return errorf("config: route %q is missing a path", r.Name)
		}

		seenExtract := make(map[string]bool, len(r.Extract))
		for _, e := range r.Extract {
			if e.Name == "" {
				return errorf("config: route %q has an extract rule with no name", r.Name)
			}
			if seenExtract[e.Name] {
				return errorf("config: route %q declares extract %q twice", r.Name, e.Name)
			}
			seenExtract[e.Name] = true

			switch e.Type {
			case ExtractJSONPath, ExtractRegex, ExtractHeader, ExtractStatusCode:
			default:
				return errorf("config: route %q extract %q has unknown type %q", r.Name, e.Name, e.Type)
			}
		}

		for _, c := range r.Conditions {
			switch c.Operator {
			case OpEquals, OpNotEquals, OpContains, OpNotContains, OpGreaterThan, OpLessThan, OpExists, OpNotExists:
			default:
				return errorf("config: route %q has a condition with unknown operator %q", r.Name, c.Operator)
			}
		}
	}

	// Extraction names declared by more than one route are allowed — later
	// extractions shadow earlier ones in the shared per-row context (spec.md
	// §3) — but it's surprising enough to warn about, per spec.md §7's
	// ConditionWarning-style "recorded, run continues" policy.
	owner := make(map[string]string, len(cfg.Routes))
	for _, r := range cfg.Routes {
		for _, e := range r.Extract {
			if prev, ok := owner[e.Name]; ok && prev != r.Name {
				fmt.Fprintf(os.Stderr, "Warning: extract %q is declared by both route %q and route %q; the route that runs later wins\n", e.Name, prev, r.Name)
			}
			owner[e.Name] = r.Name
		}
	}

	return nil
}
