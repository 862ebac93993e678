// Package engine implements spec.md §4.6: walking every (row, environment)
// pair through the planned route order, substituting templates, issuing
// requests, running extractions and conditions, and feeding the aggregator.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/compare"
	"github.com/blackcoderx/falcon/pkg/condition"
	"github.com/blackcoderx/falcon/pkg/config"
	"github.com/blackcoderx/falcon/pkg/extract"
	"github.com/blackcoderx/falcon/pkg/httpclient"
	"github.com/blackcoderx/falcon/pkg/plan"
	"github.com/blackcoderx/falcon/pkg/schema"
	"github.com/blackcoderx/falcon/pkg/template"
	"github.com/blackcoderx/falcon/pkg/userdata"
)

// Engine runs a full diff across every selected environment and user row.
type Engine struct {
	cfg     *config.Config
	client  httpclient.Client
	sem     *semaphore.Weighted
	limiter *rate.Limiter
	agg     *aggregate.Aggregator

	reqMu  sync.Mutex
	reqLog []LoggedRequest
}

// LoggedRequest is one issued request, kept for the curl-dump renderer
// (spec.md §4.9: "emitted regardless of comparison outcome").
type LoggedRequest struct {
	Row         int
	Environment string
	Route       string
	Request     httpclient.Request
}

// Requests returns every request issued during the most recent Run, in the
// order the requests were issued (cross-row ordering is not guaranteed,
// per spec.md §5).
func (e *Engine) Requests() []LoggedRequest {
	e.reqMu.Lock()
	defer e.reqMu.Unlock()
	out := make([]LoggedRequest, len(e.reqLog))
	copy(out, e.reqLog)
	return out
}

// Options narrows a run to a subset of environments/routes and tunes
// optional pacing, mirroring the CLI surface in spec.md §6.
type Options struct {
	Environments   []string // empty means "all"
	Routes         []string // empty means "all"
	IncludeHeaders bool
	IncludeErrors  bool
	RatePerSecond  float64 // 0 disables pacing
}

// New builds an Engine bound to cfg and client, ready to Run.
func New(cfg *config.Config, client httpclient.Client, agg *aggregate.Aggregator) *Engine {
	maxConcurrent := cfg.Global.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Engine{
		cfg:    cfg,
		client: client,
		sem:    semaphore.NewWeighted(int64(maxConcurrent)),
		agg:    agg,
	}
}

// routeOutcome is what one (row, environment, route) attempt produced:
// either a response with updated context, or a reason it did not run.
type routeOutcome struct {
	Class    compare.Class
	Response *httpclient.Response
	Err      error
}

// rowEnvState is the per-(row, environment) variable context and outcome
// table a single dependency-ordered task chain owns exclusively (spec.md
// §5's "no other state is shared across tasks").
type rowEnvState struct {
	ctx      map[string]string
	outcomes map[string]routeOutcome
}

// Run executes the full matrix of rows × environments × planned routes and
// returns the final per-(row, route) comparison results.
func (e *Engine) Run(ctx context.Context, rows []userdata.Row, opts Options) ([]RowRouteResult, error) {
	ordered, err := plan.Order(e.cfg.Routes)
	if err != nil {
		return nil, err
	}
	ordered = filterRoutes(ordered, opts.Routes)

	envNames := e.selectEnvironments(opts.Environments)

	e.reqMu.Lock()
	e.reqLog = nil
	e.reqMu.Unlock()

	if opts.RatePerSecond > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	e.agg.Emit(aggregate.Event{Kind: aggregate.RunStarted})

	type cell struct {
		row   int
		env   string
		state *rowEnvState
	}
	cells := make([]cell, 0, len(rows)*len(envNames))
	for ri, row := range rows {
		for _, envName := range envNames {
			state := &rowEnvState{ctx: cloneRow(row), outcomes: make(map[string]routeOutcome)}
			cells = append(cells, cell{row: ri, env: envName, state: state})
		}
		_ = row
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := map[int]map[string]map[string]routeOutcome{} // row -> route -> env -> outcome
	for _, c := range cells {
		wg.Add(1)
		go func(c cell) {
			defer wg.Done()
			e.runChain(ctx, c.row, c.env, ordered, c.state)

			mu.Lock()
			defer mu.Unlock()
			for _, r := range ordered {
				out, ok := c.state.outcomes[r.Name]
				if !ok {
					continue
				}
				if results[c.row] == nil {
					results[c.row] = map[string]map[string]routeOutcome{}
				}
				if results[c.row][r.Name] == nil {
					results[c.row][r.Name] = map[string]routeOutcome{}
				}
				results[c.row][r.Name][c.env] = out
			}
		}(c)
	}
	wg.Wait()

	compared := e.compareAll(rows, ordered, envNames, results, opts)

	e.agg.Emit(aggregate.Event{Kind: aggregate.RunFinished, Summary: e.agg.Summary()})

	return compared, nil
}

// runChain walks one (row, environment)'s routes strictly in dependency
// order, never starting route N+1 before route N's extractions have
// applied (spec.md §5 ordering guarantee 1 and 2).
func (e *Engine) runChain(ctx context.Context, row int, envName string, ordered []config.Route, state *rowEnvState) {
	env := e.cfg.Environments[envName]

	for _, route := range ordered {
		select {
		case <-ctx.Done():
			state.outcomes[route.Name] = routeOutcome{Class: compare.ClassSkipped, Err: fmt.Errorf("cancelled")}
			continue
		default:
		}

		if poisoned, cause := e.isPoisoned(route, state); poisoned {
			e.agg.Emit(aggregate.Event{Kind: aggregate.RouteStarted, Row: row, Environment: envName, Route: route.Name})
			state.outcomes[route.Name] = routeOutcome{Class: compare.ClassSkipped, Err: cause}
			e.agg.Emit(aggregate.Event{Kind: aggregate.RouteFinished, Row: row, Environment: envName, Route: route.Name, Class: compare.ClassSkipped, Cause: cause.Error()})
			continue
		}

		ok, warns := condition.Evaluate(route.Conditions, state.ctx)
		for _, w := range warns {
			_ = w // condition warnings are not recorded; a false condition records a skip with no cause
		}
		if !ok {
			e.agg.Emit(aggregate.Event{Kind: aggregate.RouteStarted, Row: row, Environment: envName, Route: route.Name})
			state.outcomes[route.Name] = routeOutcome{Class: compare.ClassSkipped}
			e.agg.Emit(aggregate.Event{Kind: aggregate.RouteFinished, Row: row, Environment: envName, Route: route.Name, Class: compare.ClassSkipped})
			continue
		}

		e.agg.Emit(aggregate.Event{Kind: aggregate.RouteStarted, Row: row, Environment: envName, Route: route.Name})

		resp, err := e.execute(ctx, row, envName, env, route, state.ctx)
		if err != nil {
			state.outcomes[route.Name] = routeOutcome{Class: compare.ClassError, Err: err}
			e.agg.Emit(aggregate.Event{Kind: aggregate.RouteFinished, Row: row, Environment: envName, Route: route.Name, Class: compare.ClassError, Cause: err.Error()})
			continue
		}

		results, err := extract.Run(route.Name, route.Extract, resp)
		for _, r := range results {
			if r.Warning == nil || r.Defaulted {
				state.ctx[r.Name] = r.Value
			}
		}
		if err != nil {
			state.outcomes[route.Name] = routeOutcome{Class: compare.ClassError, Response: resp, Err: err}
			e.agg.Emit(aggregate.Event{Kind: aggregate.RouteFinished, Row: row, Environment: envName, Route: route.Name, Class: compare.ClassError, Cause: err.Error()})
			continue
		}

		if route.ResponseSchemaFile != "" {
			if err := schema.Validate(route.Name, route.ResponseSchemaFile, resp.Body); err != nil {
				state.outcomes[route.Name] = routeOutcome{Class: compare.ClassError, Response: resp, Err: err}
				e.agg.Emit(aggregate.Event{Kind: aggregate.RouteFinished, Row: row, Environment: envName, Route: route.Name, Class: compare.ClassError, Cause: err.Error()})
				continue
			}
		}

		// The comparison class (identical/differs) isn't known until every
		// environment in this row has responded, which compareAll resolves
		// across the whole row — so the RouteFinished event for a
		// successful response is emitted there, carrying the real class,
		// rather than here with a meaningless zero-valued Class.
		state.outcomes[route.Name] = routeOutcome{Response: resp}
	}
}

// isPoisoned implements spec.md §4.6 step 5 / §7 UpstreamFailed: a route is
// skipped if any of its dependencies errored or was itself skipped.
func (e *Engine) isPoisoned(route config.Route, state *rowEnvState) (bool, error) {
	for _, dep := range route.DependsOn {
		out, ok := state.outcomes[dep]
		if !ok {
			continue
		}
		if out.Err != nil || out.Class == compare.ClassSkipped || out.Class == compare.ClassError {
			return true, fmt.Errorf("UpstreamFailed: dependency %q did not succeed", dep)
		}
	}
	return false, nil
}

// execute substitutes templates, acquires the concurrency semaphore and
// optional rate limiter, and issues the request.
func (e *Engine) execute(ctx context.Context, row int, envName string, env config.Environment, route config.Route, vars map[string]string) (*httpclient.Response, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	substitutePath := template.SubstitutePath
	if e.cfg.Global.RawSubstitution {
		substitutePath = template.Substitute
	}
	path, err := substitutePath(route.Path, vars)
	if err != nil {
		return nil, err
	}
	url := env.BaseURL + path

	headers := map[string]string{}
	for k, v := range env.Headers {
		headers[k] = v
	}
	for k, v := range e.cfg.Global.Headers {
		headers[k] = v
	}
	for k, v := range route.Headers {
		sv, err := template.Substitute(v, vars)
		if err != nil {
			return nil, err
		}
		headers[k] = sv
	}

	body, err := template.Substitute(route.Body, vars)
	if err != nil {
		return nil, err
	}

	method := route.Method
	if method == "" {
		method = "GET"
	}

	timeout := time.Duration(e.cfg.Global.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	req := httpclient.Request{
		Method:  method,
		URL:     url,
		Headers: headers,
		Body:    []byte(body),
	}

	e.reqMu.Lock()
	e.reqLog = append(e.reqLog, LoggedRequest{Row: row, Environment: envName, Route: route.Name, Request: req})
	e.reqMu.Unlock()

	return e.client.Execute(ctx, req, timeout)
}

func (e *Engine) selectEnvironments(selected []string) []string {
	if len(selected) == 0 {
		out := make([]string, 0, len(e.cfg.Environments))
		for name := range e.cfg.Environments {
			out = append(out, name)
		}
		return out
	}
	return selected
}

func filterRoutes(ordered []config.Route, selected []string) []config.Route {
	if len(selected) == 0 {
		return ordered
	}
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}
	out := make([]config.Route, 0, len(ordered))
	for _, r := range ordered {
		if want[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

func cloneRow(row userdata.Row) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
