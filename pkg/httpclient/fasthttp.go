package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// FastHTTPClient is the real Client implementation, backed by
// valyala/fasthttp — the HTTP client already in the teacher's go.mod.
type FastHTTPClient struct {
	client          *fasthttp.Client
	followRedirects bool
	maxBodyBytes    int64
}

// NewFastHTTPClient builds a client honoring spec.md §4.2/§6's
// follow_redirects and body-buffer-cap knobs.
func NewFastHTTPClient(followRedirects bool, maxBodyBytes int64) *FastHTTPClient {
	return &FastHTTPClient{
		client: &fasthttp.Client{
			MaxResponseBodySize: int(maxBodyBytes),
		},
		followRedirects: followRedirects,
		maxBodyBytes:    maxBodyBytes,
	}
}

// Execute issues one request and blocks until a response, timeout, or other
// transport failure.
func (c *FastHTTPClient) Execute(ctx context.Context, req Request, timeout time.Duration) (*Response, error) {
	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(req.URL)
	freq.Header.SetMethod(req.Method)
	for name, value := range req.Headers {
		freq.Header.Set(name, value)
	}
	if len(req.Body) > 0 {
		freq.SetBody(req.Body)
	}

	start := time.Now()

	done := make(chan error, 1)
	go func() {
		if c.followRedirects {
			done <- c.client.DoRedirects(freq, fresp, 10)
		} else {
			done <- c.client.Do(freq, fresp)
		}
	}()

	var err error
	select {
	case err = <-done:
	case <-time.After(timeout):
		return nil, &TransportError{Kind: Timeout, Detail: "request exceeded " + timeout.String()}
	case <-ctx.Done():
		return nil, &TransportError{Kind: Timeout, Detail: ctx.Err().Error()}
	}
	elapsed := time.Since(start)

	if err != nil {
		return nil, classifyError(err)
	}

	body := fresp.Body()
	truncated := int64(len(body)) >= c.maxBodyBytes
	bodyCopy := make([]byte, len(body))
	copy(bodyCopy, body)

	resp := &Response{
		StatusCode: fresp.StatusCode(),
		Headers:    make(map[string][]string),
		Body:       bodyCopy,
		Elapsed:    elapsed,
		Truncated:  truncated,
	}

	fresp.Header.VisitAll(func(key, value []byte) {
		name := string(key)
		resp.Headers[name] = append(resp.Headers[name], string(value))
	})

	if isTextual(resp.ContentType()) {
		resp.Text = string(bodyCopy)
	}

	return resp, nil
}

func isTextual(contentType string) bool {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"),
		strings.Contains(ct, "text"),
		strings.Contains(ct, "xml"),
		strings.Contains(ct, "javascript"),
		ct == "":
		return true
	default:
		return false
	}
}

func classifyError(err error) *TransportError {
	switch {
	case errors.Is(err, fasthttp.ErrTimeout), errors.Is(err, fasthttp.ErrDialTimeout):
		return &TransportError{Kind: Timeout, Detail: err.Error()}
	case errors.Is(err, fasthttp.ErrConnectionClosed):
		return &TransportError{Kind: Other, Detail: err.Error()}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &TransportError{Kind: DNSFailure, Detail: err.Error()}
	}

	var tlsErr *tls.RecordHeaderError
	if errors.As(err, &tlsErr) {
		return &TransportError{Kind: TLSFailure, Detail: err.Error()}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			return &TransportError{Kind: ConnectRefused, Detail: err.Error()}
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "connection refused") {
		return &TransportError{Kind: ConnectRefused, Detail: err.Error()}
	}
	if strings.Contains(strings.ToLower(err.Error()), "tls") {
		return &TransportError{Kind: TLSFailure, Detail: err.Error()}
	}

	return &TransportError{Kind: Other, Detail: err.Error()}
}
