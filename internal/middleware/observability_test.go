package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namelessmc/go-nameless/internal/middleware"
	"github.com/namelessmc/go-nameless/internal/testutil"
)

const secretKey = "s3cr3tK3yAbCdEf0123456789xyzWVUT"

func TestObservabilityRedactsAPIKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := testutil.NewRecordingLogger()
	metrics := &testutil.RecordingMetrics{}

	transport := middleware.Observability(logger, metrics, secretKey)(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/index.php?route=/api/v2/"+secretKey+"/userInfo&id=12", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := logger.Entries()
	require.Len(t, entries, 2)
	for _, entry := range entries {
		url, ok := entry.Fields["url"].(string)
		require.True(t, ok)
		assert.NotContains(t, url, secretKey)
		assert.Contains(t, url, middleware.Redacted)
	}

	requests := metrics.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v2/:key/userInfo", requests[0].Path)
	assert.Equal(t, http.StatusOK, requests[0].StatusCode)
}

func TestObservabilityLogsFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	logger := testutil.NewRecordingLogger()
	metrics := &testutil.RecordingMetrics{}

	transport := middleware.Observability(logger, metrics, secretKey)(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v2/"+secretKey+"/info", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	if resp != nil {
		resp.Body.Close()
	}
	require.Error(t, err)

	entries := logger.Entries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "warn", last.Level)
	assert.False(t, strings.Contains(last.Fields["error"].(string), secretKey))

	errs := metrics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "transport", errs[0].ErrorType)

	requests := metrics.Requests()
	require.Len(t, requests, 1)
	assert.Zero(t, requests[0].StatusCode)
	assert.Equal(t, "/api/v2/:key/info", requests[0].Path)
}

func TestObservabilityCanceledRequestIsNotATransportFailure(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	logger := testutil.NewRecordingLogger()
	metrics := &testutil.RecordingMetrics{}

	transport := middleware.Observability(logger, metrics, secretKey)(http.DefaultTransport)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v2/"+secretKey+"/info", nil)
	require.NoError(t, err)

	go func() {
		<-started
		cancel()
	}()

	resp, err := transport.RoundTrip(req)
	if resp != nil {
		resp.Body.Close()
	}
	require.Error(t, err)

	errs := metrics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "canceled", errs[0].ErrorType)

	for _, entry := range logger.Entries() {
		assert.NotEqual(t, "error", entry.Level, entry.Message)
		assert.NotEqual(t, "warn", entry.Level, entry.Message)
	}
	last := logger.Entries()[len(logger.Entries())-1]
	assert.Equal(t, "http request canceled", last.Message)
}

func TestObservabilityDerivedDeadlineIsATransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	metrics := &testutil.RecordingMetrics{}
	transport := middleware.Observability(nil, metrics, "")(http.DefaultTransport)

	// The caller's context stays live; only a context derived from it expires,
	// the way http.Client.Timeout does it.
	ctx, cancel := context.WithTimeout(middleware.WithCaller(context.Background()), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	if resp != nil {
		resp.Body.Close()
	}
	require.Error(t, err)

	errs := metrics.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "transport", errs[0].ErrorType)
}

func TestObservabilityWarnsOnClientErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	logger := testutil.NewRecordingLogger()
	transport := middleware.Observability(logger, nil, "")(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := logger.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[1].Level)
}

func TestObservabilityWithNilParams(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := middleware.Observability(nil, nil, "")(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestRedactSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		secret string
		want   string
	}{
		{name: "query style", input: "https://site/index.php?route=/api/v2/abc/info", secret: "abc", want: "https://site/index.php?route=/api/v2/REDACTED/info"},
		{name: "path style", input: "https://site/api/v2/abc/info", secret: "abc", want: "https://site/api/v2/REDACTED/info"},
		{name: "empty secret", input: "https://site/api/v2/abc/info", secret: "", want: "https://site/api/v2/abc/info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, middleware.RedactSecret(tt.input, tt.secret))
		})
	}
}
