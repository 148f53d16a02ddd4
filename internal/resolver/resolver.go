package resolver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// connection pooling limits to prevent resource exhaustion when probing many targets
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Failure reason strings surfaced on transport-level probe failures.
// These are stable values callers may match on.
const (
	ReasonTimeout          = "Timeout"
	ReasonConnectionError  = "Connection Error"
	ReasonTooManyRedirects = "Too Many Redirects"
)

// Outcome is the normalized result of probing a single URL.
//
// Exactly one of two shapes applies: an HTTP status was observed
// (StatusCode > 0, FailureReason empty) or the probe failed at the
// transport level (StatusCode 0, FailureReason describes why).
type Outcome struct {
	// StatusCode is the HTTP status of the final response.
	// Zero if the probe failed before a response was received.
	StatusCode int

	// RedirectTarget is the Location header value for redirect statuses
	// (301, 302, 303, 307, 308). Empty otherwise, or when the server
	// omitted the header.
	RedirectTarget string

	// FailureReason describes a transport-level failure. Empty when a
	// response was received.
	FailureReason string
}

// Resolver probes URLs with lightweight HEAD requests, falling back to GET
// when a server rejects HEAD.
//
// Redirects are never followed: the first response is the answer, so a 301
// is reported as a 301 rather than silently resolved to its destination.
// Timeouts are applied per-request via context, not as a global client
// timeout, so the HEAD attempt and a GET retry each get the full budget.
type Resolver struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// New creates a [Resolver] with the given User-Agent header and per-request
// timeout.
//
// The underlying client is configured with connection pooling limits so that
// probing large link sets does not exhaust sockets:
//   - MaxIdleConns: 100 total idle connections
//   - MaxIdleConnsPerHost: 10 idle connections per host
//   - MaxConnsPerHost: 10 concurrent connections per host
//   - IdleConnTimeout: 60 seconds before closing idle connections
func New(userAgent string, timeout time.Duration) *Resolver {
	return &Resolver{
		client: &http.Client{
			// report redirects instead of following them
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Check probes url and returns a normalized [Outcome].
//
// A HEAD request is tried first. If the server answers 405 Method Not
// Allowed, the probe retries once with GET; the GET response body is
// discarded unread. Any other status, including other 4xx/5xx values,
// is returned as-is with no retry.
//
// Check never returns an error; probe failures are captured in
// Outcome.FailureReason. This simplifies handling in the page checker.
func (r *Resolver) Check(ctx context.Context, url string) Outcome {
	outcome, retryWithGet := r.attempt(ctx, http.MethodHead, url)
	if retryWithGet {
		outcome, _ = r.attempt(ctx, http.MethodGet, url)
	}
	return outcome
}

// attempt performs a single probe. The second return value is true when the
// server answered 405 to a HEAD request and a GET retry should follow.
func (r *Resolver) attempt(ctx context.Context, method, url string) (Outcome, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return Outcome{FailureReason: err.Error()}, false
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return Outcome{FailureReason: failureReason(err)}, false
	}
	defer func() { _ = resp.Body.Close() }()

	if method == http.MethodHead && resp.StatusCode == http.StatusMethodNotAllowed {
		return Outcome{StatusCode: resp.StatusCode}, true
	}

	outcome := Outcome{StatusCode: resp.StatusCode}
	if isRedirect(resp.StatusCode) {
		outcome.RedirectTarget = resp.Header.Get("Location")
	}
	return outcome, false
}

// Close closes all idle connections in the resolver's connection pool.
//
// Safe to call multiple times. After Close, the resolver remains usable but
// new connections will be established as needed.
func (r *Resolver) Close() {
	if r == nil || r.client == nil {
		return
	}
	if transport, ok := r.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

func isRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}

// failureReason maps a transport error to one of the stable reason strings.
// Unrecognized errors pass through as their own text.
func failureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ReasonConnectionError
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ReasonConnectionError
	}

	// http.Client reports an exceeded redirect cap as "stopped after N redirects"
	if strings.Contains(err.Error(), "stopped after") && strings.Contains(err.Error(), "redirects") {
		return ReasonTooManyRedirects
	}

	return err.Error()
}
