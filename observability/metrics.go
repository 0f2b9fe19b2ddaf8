package observability

import "time"

// MetricsRecorder is an interface for recording metrics.
// Implementations can use any metrics library (Prometheus, StatsD, etc.).
type MetricsRecorder interface {
	// RecordHTTPRequest records an HTTP request with method, normalized path, status code, and duration.
	// statusCode is 0 when no response was received.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordRateLimit records time spent waiting for the client-side rate limiter.
	RecordRateLimit(endpoint string, wait time.Duration)

	// RecordError records a failed operation. operation is "call:<action>" for API
	// calls and errorType names the failure ("transport", "malformed", "canceled" or
	// the error kind of an application error).
	RecordError(operation, errorType string)
}

type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a metrics recorder that does nothing.
// This is the default recorder used when none is provided.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopMetricsRecorder() MetricsRecorder {
	return &noopMetricsRecorder{}
}

func (m *noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (m *noopMetricsRecorder) RecordRateLimit(string, time.Duration)                {}
func (m *noopMetricsRecorder) RecordError(string, string)                           {}
