package httpclient

import (
	"context"
	"testing"
	"time"
)

func TestFakeClientRecordsCalls(t *testing.T) {
	fc := &FakeClient{
		Handler: func(req Request) (*Response, error) {
			return TextResponse(200, "text/plain", "ok"), nil
		},
	}

	_, err := fc.Execute(context.Background(), Request{Method: "GET", URL: "http://a/health"}, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := fc.Calls()
	if len(calls) != 1 || calls[0].URL != "http://a/health" {
		t.Fatalf("unexpected call log: %+v", calls)
	}
}

func TestResponseHeaderValueCaseInsensitive(t *testing.T) {
	resp := &Response{Headers: map[string][]string{"X-Request-Id": {"abc"}}}
	v, ok := resp.HeaderValue("x-request-id")
	if !ok || v != "abc" {
		t.Fatalf("expected case-insensitive header lookup, got %q, %v", v, ok)
	}
}

func TestResponseIsJSON(t *testing.T) {
	resp := TextResponse(200, "application/json; charset=utf-8", `{"a":1}`)
	if !resp.IsJSON() {
		t.Error("expected IsJSON to be true")
	}
}
