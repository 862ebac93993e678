package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/blackcoderx/falcon/pkg/aggregate"
	"github.com/blackcoderx/falcon/pkg/compare"
	"github.com/blackcoderx/falcon/pkg/config"
	"github.com/blackcoderx/falcon/pkg/httpclient"
	"github.com/blackcoderx/falcon/pkg/userdata"
)

func baseConfig() *config.Config {
	return &config.Config{
		Global: config.Global{TimeoutSeconds: 5, MaxConcurrent: 10, FollowRedirects: true},
		Environments: map[string]config.Environment{
			"a": {Name: "a", BaseURL: "http://a"},
			"b": {Name: "b", BaseURL: "http://b"},
		},
	}
}

func TestRunSmokeIdentical(t *testing.T) {
	cfg := baseConfig()
	cfg.Routes = []config.Route{{Name: "health", Method: "GET", Path: "/h"}}

	client := &httpclient.FakeClient{
		Handler: func(req httpclient.Request) (*httpclient.Response, error) {
			return httpclient.TextResponse(200, "text/plain", "ok"), nil
		},
	}

	agg := aggregate.New()
	e := New(cfg, client, agg)
	results, err := e.Run(context.Background(), []userdata.Row{{}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Result.Class != compare.ClassIdentical {
		t.Fatalf("expected one identical result, got %+v", results)
	}
}

func TestRunBodyDiffers(t *testing.T) {
	cfg := baseConfig()
	cfg.Routes = []config.Route{{Name: "health", Method: "GET", Path: "/h"}}

	client := &httpclient.FakeClient{
		Handler: func(req httpclient.Request) (*httpclient.Response, error) {
			if req.URL == "http://b/h" {
				return httpclient.TextResponse(200, "text/plain", "degraded"), nil
			}
			return httpclient.TextResponse(200, "text/plain", "ok"), nil
		},
	}

	agg := aggregate.New()
	e := New(cfg, client, agg)
	results, err := e.Run(context.Background(), []userdata.Row{{}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Result.Class != compare.ClassDiffers {
		t.Fatalf("expected differs, got %v", results[0].Result.Class)
	}
}

func TestRunChainPropagatesExtractedToken(t *testing.T) {
	cfg := baseConfig()
	cfg.Routes = []config.Route{
		{
			Name: "login", Method: "POST", Path: "/auth",
			Extract: []config.ExtractRule{{Name: "token", Type: config.ExtractJSONPath, Source: "$.t", Required: true}},
		},
		{
			Name: "me", Method: "GET", Path: "/me",
			Headers:   map[string]string{"Authorization": "Bearer {token}"},
			DependsOn: []string{"login"},
		},
	}

	var mu sync.Mutex
	seenAuth := map[string]string{}

	client := &httpclient.FakeClient{
		Handler: func(req httpclient.Request) (*httpclient.Response, error) {
			if req.URL == "http://a/auth" {
				return httpclient.TextResponse(200, "application/json", `{"t":"abc"}`), nil
			}
			if req.URL == "http://b/auth" {
				return httpclient.TextResponse(200, "application/json", `{"t":"xyz"}`), nil
			}
			mu.Lock()
			seenAuth[req.URL] = req.Headers["Authorization"]
			mu.Unlock()
			return httpclient.TextResponse(200, "text/plain", "hi"), nil
		},
	}

	agg := aggregate.New()
	e := New(cfg, client, agg)
	results, err := e.Run(context.Background(), []userdata.Row{{}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var meResult *RowRouteResult
	for i := range results {
		if results[i].Route == "me" {
			meResult = &results[i]
		}
	}
	if meResult == nil || meResult.Result.Class != compare.ClassIdentical {
		t.Fatalf("expected me route identical, got %+v", meResult)
	}
	if seenAuth["http://a/me"] != "Bearer abc" || seenAuth["http://b/me"] != "Bearer xyz" {
		t.Fatalf("expected env-specific tokens, got %+v", seenAuth)
	}
}

func TestRunUpstreamFailurePoisonsDependents(t *testing.T) {
	cfg := baseConfig()
	cfg.Environments = map[string]config.Environment{"a": {Name: "a", BaseURL: "http://a"}}
	cfg.Routes = []config.Route{
		{
			Name: "login", Method: "POST", Path: "/auth",
			Extract: []config.ExtractRule{{Name: "token", Type: config.ExtractJSONPath, Source: "$.missing", Required: true}},
		},
		{Name: "me", Method: "GET", Path: "/me", DependsOn: []string{"login"}},
	}

	client := &httpclient.FakeClient{
		Handler: func(req httpclient.Request) (*httpclient.Response, error) {
			return httpclient.TextResponse(200, "application/json", `{}`), nil
		},
	}

	agg := aggregate.New()
	e := New(cfg, client, agg)
	results, err := e.Run(context.Background(), []userdata.Row{{}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var meResult *RowRouteResult
	for i := range results {
		if results[i].Route == "me" {
			meResult = &results[i]
		}
	}
	if meResult == nil || meResult.Result.Class != compare.ClassSkipped {
		t.Fatalf("expected me route skipped due to upstream failure, got %+v", meResult)
	}
}

func TestRunConditionSkip(t *testing.T) {
	cfg := baseConfig()
	cfg.Environments = map[string]config.Environment{"a": {Name: "a", BaseURL: "http://a"}}
	cfg.Routes = []config.Route{
		{
			Name: "premium", Method: "GET", Path: "/p",
			Conditions: []config.Condition{{Field: "userType", Operator: config.OpEquals, Value: "premium"}},
		},
	}

	client := &httpclient.FakeClient{
		Handler: func(req httpclient.Request) (*httpclient.Response, error) {
			return httpclient.TextResponse(200, "text/plain", "ok"), nil
		},
	}

	agg := aggregate.New()
	e := New(cfg, client, agg)
	results, err := e.Run(context.Background(), []userdata.Row{{"userType": "basic"}}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Result.Class != compare.ClassSkipped {
		t.Fatalf("expected skipped due to unmet condition, got %v", results[0].Result.Class)
	}
}
