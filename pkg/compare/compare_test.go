package compare

import (
	"testing"

	"github.com/blackcoderx/falcon/pkg/httpclient"
)

func jsonResp(env string, status int, body string) EnvResult {
	return EnvResult{
		Environment: env,
		Response: &httpclient.Response{
			StatusCode: status,
			Headers:    map[string][]string{"Content-Type": {"application/json"}},
			Body:       []byte(body),
			Text:       body,
		},
	}
}

func TestCompareIdenticalBodies(t *testing.T) {
	results := []EnvResult{
		jsonResp("a", 200, `{"ok":true}`),
		jsonResp("b", 200, `{"ok":true}`),
	}
	res := Compare(results, Options{})
	if res.Class != ClassIdentical {
		t.Fatalf("expected identical, got %v diffs=%v", res.Class, res.Diffs)
	}
}

func TestCompareJSONCanonicalization(t *testing.T) {
	results := []EnvResult{
		jsonResp("a", 200, `{"a":1,"b":2}`),
		jsonResp("b", 200, `{"b": 2,   "a":1}`),
	}
	res := Compare(results, Options{})
	if res.Class != ClassIdentical {
		t.Fatalf("expected identical after canonicalization, got %v diffs=%v", res.Class, res.Diffs)
	}
}

func TestCompareBodyDiffers(t *testing.T) {
	results := []EnvResult{
		jsonResp("a", 200, `{"status":"ok"}`),
		jsonResp("b", 200, `{"status":"degraded"}`),
	}
	res := Compare(results, Options{})
	if res.Class != ClassDiffers {
		t.Fatalf("expected differs, got %v", res.Class)
	}
}

func TestCompareStatusMismatch(t *testing.T) {
	results := []EnvResult{
		jsonResp("a", 200, `{"ok":true}`),
		jsonResp("b", 500, `{"ok":true}`),
	}
	res := Compare(results, Options{})
	if res.Class != ClassDiffers {
		t.Fatalf("expected differs on status mismatch, got %v", res.Class)
	}
	found := false
	for _, d := range res.Diffs {
		if d.Field == "status" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a status FieldDiff")
	}
}

func TestCompareTransportErrorYieldsErrorClass(t *testing.T) {
	results := []EnvResult{
		jsonResp("a", 200, `{"ok":true}`),
		{Environment: "b", Err: &httpclient.TransportError{Kind: httpclient.Timeout, Detail: "boom"}},
	}
	res := Compare(results, Options{})
	if res.Class != ClassError {
		t.Fatalf("expected error class, got %v", res.Class)
	}
	if _, ok := res.Errors["b"]; !ok {
		t.Fatal("expected error entry for env b")
	}
}

func TestCompareIncludeErrorsComparesSurvivors(t *testing.T) {
	results := []EnvResult{
		jsonResp("a", 200, `{"ok":true}`),
		jsonResp("b", 200, `{"ok":true}`),
		{Environment: "c", Err: &httpclient.TransportError{Kind: httpclient.Timeout, Detail: "boom"}},
	}
	res := Compare(results, Options{IncludeErrors: true})
	if res.Class != ClassIdentical {
		t.Fatalf("expected identical among survivors, got %v diffs=%v", res.Class, res.Diffs)
	}
	if _, ok := res.Errors["c"]; !ok {
		t.Fatal("expected env c's error to still be reported")
	}
}

func TestCompareIgnoresDefaultHeadersWhenIncluded(t *testing.T) {
	a := jsonResp("a", 200, `{"ok":true}`)
	a.Response.Headers["Date"] = []string{"Mon, 01 Jan 2024 00:00:00 GMT"}
	b := jsonResp("b", 200, `{"ok":true}`)
	b.Response.Headers["Date"] = []string{"Tue, 02 Jan 2024 00:00:00 GMT"}

	res := Compare([]EnvResult{a, b}, Options{IncludeHeaders: true})
	if res.Class != ClassIdentical {
		t.Fatalf("expected identical with Date ignored, got %v diffs=%v", res.Class, res.Diffs)
	}
}
