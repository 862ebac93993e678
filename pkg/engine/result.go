package engine

import (
	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/compare"
	"github.com/blackcoderx/falcon/pkg/config"
	"github.com/blackcoderx/falcon/pkg/userdata"
)

// RowRouteResult is the comparator's verdict for one (row, route) pair
// across every selected environment (spec.md §4.7).
type RowRouteResult struct {
	Row    int
	Route  string
	Result compare.Result
}

// compareAll folds the per-(row, environment, route) outcomes recorded
// during Run into one comparison per (row, route), per spec.md §4.7.
func (e *Engine) compareAll(
	rows []userdata.Row,
	ordered []config.Route,
	envNames []string,
	outcomes map[int]map[string]map[string]routeOutcome,
	opts Options,
) []RowRouteResult {
	var out []RowRouteResult

	compareOpts := compare.Options{
		IncludeHeaders: opts.IncludeHeaders,
		IgnoreHeaders:  e.cfg.Global.IgnoreHeaders,
		IncludeErrors:  opts.IncludeErrors,
	}

	for ri := range rows {
		for _, route := range ordered {
			byEnv := outcomes[ri][route.Name]
			if len(byEnv) == 0 {
				continue
			}

			allSkipped := true
			var envResults []compare.EnvResult
			for _, envName := range envNames {
				o, ok := byEnv[envName]
				if !ok {
					continue
				}
				if o.Class != compare.ClassSkipped {
					allSkipped = false
				}
				if o.Class == compare.ClassSkipped {
					continue
				}
				envResults = append(envResults, compare.EnvResult{
					Environment: envName,
					Response:    o.Response,
					Err:         o.Err,
				})
			}

			var result compare.Result
			switch {
			case allSkipped:
				result = compare.Result{Class: compare.ClassSkipped}
			case len(envResults) == 0:
				result = compare.Result{Class: compare.ClassSkipped}
			default:
				result = compare.Compare(envResults, compareOpts)
			}

			// Routes that errored or were skipped already emitted their
			// RouteFinished event per (row, env) as the failure happened
			// (engine.go's runChain). A route that reached a response
			// still needs its RouteFinished event emitted here, now that
			// the class is known across the whole row.
			for _, envName := range envNames {
				o, ok := byEnv[envName]
				if !ok || o.Response == nil || o.Err != nil {
					continue
				}
				e.agg.Emit(aggregate.Event{
					Kind:        aggregate.RouteFinished,
					Row:         ri,
					Environment: envName,
					Route:       route.Name,
					Class:       result.Class,
				})
			}

			out = append(out, RowRouteResult{Row: ri, Route: route.Name, Result: result})
		}
	}

	return out
}
