package httpclient

import (
	"context"
	"sync"
	"time"
)

// FakeClient is the deterministic test seam spec.md §4.2 calls for.
// Handler is invoked once per Execute call; CallLog records every request
// in the order it was issued so tests can assert on ordering (spec.md §8
// property 2).
type FakeClient struct {
	mu      sync.Mutex
	Handler func(req Request) (*Response, error)
	CallLog []Request
}

// Execute records the request and delegates to Handler.
func (f *FakeClient) Execute(_ context.Context, req Request, _ time.Duration) (*Response, error) {
	f.mu.Lock()
	f.CallLog = append(f.CallLog, req)
	f.mu.Unlock()

	if f.Handler == nil {
		return &Response{StatusCode: 200}, nil
	}
	return f.Handler(req)
}

// Calls returns a snapshot of every request issued so far.
func (f *FakeClient) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.CallLog))
	copy(out, f.CallLog)
	return out
}

// TextResponse is a convenience constructor for a fake response with the
// given status, Content-Type and body.
func TextResponse(status int, contentType, body string) *Response {
	return &Response{
		StatusCode: status,
		Headers:    map[string][]string{"Content-Type": {contentType}},
		Body:       []byte(body),
		Text:       body,
	}
}
