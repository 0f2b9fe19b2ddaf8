package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync"

	"github.com/namelessmc/go-nameless/observability"
)

// Redacted replaces the API key in every logged URL.
const Redacted = "REDACTED"

// Observability returns a middleware that logs and records metrics for HTTP requests.
// Occurrences of secret (the API key) are replaced with Redacted in logged URLs.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder, secret string) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
			secret:  secret,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
	secret  string
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	urlStr := RedactSecret(req.URL.String(), t.secret)
	path := normalizePath(RedactSecret(routeOf(req), t.secret))

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: urlStr},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		fields := []observability.Field{
			{Key: "method", Value: req.Method},
			{Key: "url", Value: urlStr},
			{Key: "duration", Value: duration},
			{Key: "error", Value: RedactSecret(err.Error(), t.secret)},
		}

		errorType := "transport"
		if canceledByCaller(req) {
			errorType = "canceled"
			t.logger.Debug("http request canceled", fields...)
		} else {
			t.logger.Warn("http request failed", fields...)
		}

		t.metrics.RecordHTTPRequest(req.Method, path, 0, duration)
		t.metrics.RecordError("http_request", errorType)

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "url", Value: urlStr},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	t.metrics.RecordHTTPRequest(req.Method, path, resp.StatusCode, duration)

	return resp, nil
}

type callerKey struct{}

// WithCaller remembers ctx as the caller's context. net/http enforces
// http.Client.Timeout on a context derived from it, so only the remembered one
// tells a caller's cancellation apart from the client's own timeout.
func WithCaller(ctx context.Context) context.Context {
	return context.WithValue(ctx, callerKey{}, ctx)
}

func canceledByCaller(req *http.Request) bool {
	if caller, ok := req.Context().Value(callerKey{}).(context.Context); ok {
		return caller.Err() != nil
	}
	return req.Context().Err() != nil
}

// RedactSecret replaces every occurrence of secret in s. An empty secret leaves s untouched.
func RedactSecret(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, Redacted)
}

// routeOf returns the API route of req. Websites without friendly URLs carry it
// in the "route" query parameter instead of the path.
func routeOf(req *http.Request) string {
	if route := req.URL.Query().Get("route"); route != "" {
		return route
	}
	return req.URL.Path
}

var (
	// apiKeyPattern matches the key segment that follows the API version.
	apiKeyPattern = regexp.MustCompile(`(/api/v\d+/)[^/]+`)

	// idPattern matches dashed UUIDs, undashed UUIDs and whole numeric segments.
	idPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}|/[0-9a-fA-F]{32}(?:/|$)|/\d+(?:/|$)`)

	// normalizedPathCache caches normalized routes; a client talks to a small,
	// fixed set of actions so the cache stays small.
	normalizedPathCache = xsync.NewMapOf[string]()
)

// normalizePath replaces the API key and identifiers in a route with placeholders
// to keep metric label cardinality bounded.
//
// Examples:
//   - /api/v2/0123456789abcdef/info → /api/v2/:key/info
//   - /api/v2/:key/user/12345 → /api/v2/:key/user/:id
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		return cached
	}

	normalized := apiKeyPattern.ReplaceAllString(path, "${1}:key")
	normalized = idPattern.ReplaceAllStringFunc(normalized, func(match string) string {
		if match[0] != '/' {
			return ":id"
		}
		if match[len(match)-1] == '/' {
			return "/:id/"
		}
		return "/:id"
	})

	normalizedPathCache.Store(path, normalized)

	return normalized
}
