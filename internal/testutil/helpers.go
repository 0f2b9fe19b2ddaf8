// Package testutil provides common testing utilities and helpers.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request is what a mock website saw of one API call.
type Request struct {
	Method    string
	Action    string
	APIKey    string
	Query     url.Values
	RawQuery  string
	Body      []byte
	UserAgent string
	Header    http.Header
}

// JSONBody decodes the request body into a generic map.
func (r Request) JSONBody(t *testing.T) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &body), "request body should be a JSON object")
	return body
}

// Website is a mock NamelessMC website. Handlers are keyed by action route, e.g.
// "info" or "userInfo", and see the request after the API key check.
type Website struct {
	*httptest.Server

	APIKey string

	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []Request
}

// NewWebsite starts a mock website accepting apiKey. The server is closed when the
// test ends.
func NewWebsite(t *testing.T, apiKey string) *Website {
	t.Helper()

	site := &Website{
		APIKey:   apiKey,
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
	}
	site.Server = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.Close)

	return site
}

// Handle registers handler for action.
func (s *Website) Handle(action string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[action] = handler
}

// HandleJSON registers a handler answering action with a fixed status and body.
func (s *Website) HandleJSON(action string, statusCode int, body string) {
	s.Handle(action, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(s.t, w, statusCode, body)
	})
}

// Requests returns a copy of every request received so far.
func (s *Website) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, failing the test when there is none.
func (s *Website) LastRequest(t *testing.T) Request {
	t.Helper()

	reqs := s.Requests()
	require.NotEmpty(t, reqs, "website received no requests")
	return reqs[len(reqs)-1]
}

// Hits returns how many requests targeted action.
func (s *Website) Hits(action string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Action == action {
			n++
		}
	}
	return n
}

func (s *Website) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	key, action := SplitRoute(r)
	req := Request{
		Method:    r.Method,
		Action:    action,
		APIKey:    key,
		Query:     r.URL.Query(),
		RawQuery:  r.URL.RawQuery,
		Body:      body,
		UserAgent: r.UserAgent(),
		Header:    r.Header.Clone(),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	handler, ok := s.handlers[action]
	s.mu.Unlock()

	if key != s.APIKey {
		WriteJSON(s.t, w, http.StatusForbidden, `{"error":true,"errorCode":"nameless:invalid_api_key"}`)
		return
	}

	if !ok {
		WriteJSON(s.t, w, http.StatusBadRequest, `{"error":true,"errorCode":"nameless:invalid_api_method"}`)
		return
	}

	handler(w, r)
}

// SplitRoute extracts the API key and action from a request in either URL style:
// /api/v2/<key>/<action> or ?route=/api/v2/<key>/<action>.
func SplitRoute(r *http.Request) (apiKey, action string) {
	route := r.URL.Query().Get("route")
	if route == "" {
		route = r.URL.Path
	}

	_, rest, found := strings.Cut(route, "/api/v2/")
	if !found {
		return "", ""
	}

	apiKey, action, _ = strings.Cut(rest, "/")
	return apiKey, action
}

// WriteJSON writes body with the given status and a JSON content type.
func WriteJSON(tb testing.TB, w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err := io.WriteString(w, body)
	assert.NoError(tb, err, "Failed to write response body")
}

// NewMockServer creates a test HTTP server that answers every request with the
// same status and body.
func NewMockServer(t *testing.T, responseBody string, statusCode int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(t, w, statusCode, responseBody)
	}))
	t.Cleanup(server.Close)

	return server
}

// Response is one canned answer of NewMockServerSequence.
type Response struct {
	Body       string
	StatusCode int
}

// NewMockServerSequence creates a test server that returns responses in sequence.
// Each call to the server returns the next response in the slice.
func NewMockServerSequence(t *testing.T, responses []Response) *httptest.Server {
	t.Helper()

	var (
		mu        sync.Mutex
		callCount int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		idx := callCount
		callCount++
		mu.Unlock()

		if idx >= len(responses) {
			t.Errorf("More requests than configured responses (got %d requests, have %d responses)",
				idx+1, len(responses))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		WriteJSON(t, w, responses[idx].StatusCode, responses[idx].Body)
	}))
	t.Cleanup(server.Close)

	return server
}
