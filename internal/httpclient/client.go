// Package httpclient builds the *http.Client used for API calls, wrapping its
// transport in a RoundTripper middleware chain.
package httpclient

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// DefaultTimeout bounds a whole round trip, body included.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRedirects is how many redirects a single call may follow.
	DefaultMaxRedirects = 10
)

// ErrTooManyRedirects is returned by the client once the redirect limit is hit.
var ErrTooManyRedirects = errors.New("too many redirects")

// Client is an HTTP client that supports middleware chaining.
type Client struct {
	base         *http.Client
	middleware   []Middleware
	maxRedirects int
}

// Middleware wraps an http.RoundTripper to add behavior.
// Middleware is applied in order: first middleware is outermost.
type Middleware func(http.RoundTripper) http.RoundTripper

// New creates a new HTTP client with the given options.
//
// A caller supplied *http.Client is copied, never modified in place.
func New(opts ...Option) *Client {
	c := &Client{
		base:         &http.Client{Timeout: DefaultTimeout},
		maxRedirects: DefaultMaxRedirects,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.base.CheckRedirect == nil {
		limit := c.maxRedirects
		c.base.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
			// via holds every request sent so far, the original included.
			if len(via) > limit {
				return errors.Wrapf(ErrTooManyRedirects, "stopped after %d redirects", limit)
			}
			return nil
		}
	}

	if len(c.middleware) > 0 {
		transport := c.base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}

		// Apply in reverse so the first middleware is outermost
		for i := len(c.middleware) - 1; i >= 0; i-- {
			transport = c.middleware[i](transport)
		}

		c.base.Transport = transport
	}

	return c
}

// Do executes an HTTP request using the configured middleware chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.base.Do(req) //nolint:wrapcheck // callers classify net/http errors themselves
}

// HTTPClient returns the underlying http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}
