package testutil

import (
	"sync"
	"time"

	"github.com/namelessmc/go-nameless/observability"
)

// LogEntry is one message captured by RecordingLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// RecordingLogger is an observability.Logger that keeps every entry in memory.
type RecordingLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	with    []observability.Field
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (l *RecordingLogger) Debug(msg string, fields ...observability.Field) {
	l.record("debug", msg, fields)
}

func (l *RecordingLogger) Info(msg string, fields ...observability.Field) {
	l.record("info", msg, fields)
}

func (l *RecordingLogger) Warn(msg string, fields ...observability.Field) {
	l.record("warn", msg, fields)
}

func (l *RecordingLogger) Error(msg string, fields ...observability.Field) {
	l.record("error", msg, fields)
}

// With returns a logger sharing the same entry list.
//
//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *RecordingLogger) With(fields ...observability.Field) observability.Logger {
	return &RecordingLogger{
		mu:      l.mu,
		entries: l.entries,
		with:    append(append([]observability.Field(nil), l.with...), fields...),
	}
}

// Entries returns a copy of the captured entries.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), *l.entries...)
}

func (l *RecordingLogger) record(level, msg string, fields []observability.Field) {
	entry := LogEntry{Level: level, Message: msg, Fields: make(map[string]any, len(l.with)+len(fields))}
	for _, f := range l.with {
		entry.Fields[f.Key] = f.Value
	}
	for _, f := range fields {
		entry.Fields[f.Key] = f.Value
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, entry)
}

// HTTPRequestMetric is one RecordHTTPRequest call.
type HTTPRequestMetric struct {
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
}

// ErrorMetric is one RecordError call.
type ErrorMetric struct {
	Operation string
	ErrorType string
}

// RecordingMetrics is an observability.MetricsRecorder that keeps every event in memory.
type RecordingMetrics struct {
	mu         sync.Mutex
	requests   []HTTPRequestMetric
	rateLimits []time.Duration
	errors     []ErrorMetric
}

func (m *RecordingMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, HTTPRequestMetric{Method: method, Path: path, StatusCode: statusCode, Duration: duration})
}

func (m *RecordingMetrics) RecordRateLimit(_ string, wait time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimits = append(m.rateLimits, wait)
}

func (m *RecordingMetrics) RecordError(operation, errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, ErrorMetric{Operation: operation, ErrorType: errorType})
}

// Requests returns the recorded HTTP requests.
func (m *RecordingMetrics) Requests() []HTTPRequestMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]HTTPRequestMetric(nil), m.requests...)
}

// RateLimits returns the recorded rate limit waits.
func (m *RecordingMetrics) RateLimits() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.rateLimits...)
}

// Errors returns the recorded errors.
func (m *RecordingMetrics) Errors() []ErrorMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ErrorMetric(nil), m.errors...)
}

var (
	_ observability.Logger          = (*RecordingLogger)(nil)
	_ observability.MetricsRecorder = (*RecordingMetrics)(nil)
)
