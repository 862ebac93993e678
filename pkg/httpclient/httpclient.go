// Package httpclient is the HTTP client abstraction from spec.md §4.2: one
// operation, Execute, returning a Response or a classified TransportError.
// It is deliberately a single-method seam so tests can substitute a
// deterministic Fake (see fake.go) for the real valyala/fasthttp-backed
// client (see fasthttp.go).
package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Request is a fully prepared (method, absolute URL, headers, body) tuple,
// produced by substituting the current variable context into a route's
// templates.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is spec.md §3's response record.
type Response struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	Text       string // decoded body when the content type is textual
	Elapsed    time.Duration
	Truncated  bool
}

// HeaderValue does a case-insensitive, first-value lookup, matching
// spec.md §3's "case-insensitive names" requirement for header maps.
func (r *Response) HeaderValue(name string) (string, bool) {
	for k, vs := range r.Headers {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}

// ContentType returns the response's Content-Type header, if any.
func (r *Response) ContentType() string {
	ct, _ := r.HeaderValue("Content-Type")
	return ct
}

// IsJSON reports whether the response is declared as JSON content.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType()), "json")
}

// TransportErrorKind is the closed set of transport failure classes from
// spec.md §4.2.
type TransportErrorKind string

const (
	Timeout         TransportErrorKind = "Timeout"
	ConnectRefused  TransportErrorKind = "ConnectRefused"
	DNSFailure      TransportErrorKind = "DnsFailure"
	TLSFailure      TransportErrorKind = "TlsFailure"
	InvalidResponse TransportErrorKind = "InvalidResponse"
	Other           TransportErrorKind = "Other"
)

// TransportError reports why a request could not produce a response.
type TransportError struct {
	Kind   TransportErrorKind
	Detail string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error (%s): %s", e.Kind, e.Detail)
}

// Client executes one prepared request against a timeout and returns a
// Response or a *TransportError.
type Client interface {
	Execute(ctx context.Context, req Request, timeout time.Duration) (*Response, error)
}
