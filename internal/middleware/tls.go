package middleware

import (
	"crypto/tls"
	"net/http"

	"github.com/cockroachdb/errors"
)

// ErrTLSNotConfigurable is returned when TLS settings are requested for a
// RoundTripper that is not an *http.Transport.
var ErrTLSNotConfigurable = errors.New("TLS settings need an *http.Transport")

// CanConfigureTLS reports whether TLSConfig can apply its settings to rt.
// A nil rt stands for http.DefaultTransport.
func CanConfigureTLS(rt http.RoundTripper) bool {
	if rt == nil {
		return true
	}
	_, ok := rt.(*http.Transport)
	return ok
}

// TLSConfig returns a middleware that replaces the TLS settings on a clone of the
// underlying *http.Transport. Any other RoundTripper is kept and every request
// through it fails with ErrTLSNotConfigurable, so the caller's transport is never
// dropped in silence.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		transport, ok := next.(*http.Transport)
		if !ok {
			return &unconfigurableTransport{err: errors.Wrapf(ErrTLSNotConfigurable, "got %T", next)}
		}

		transport = transport.Clone()
		transport.TLSClientConfig = config

		return transport
	}
}

type unconfigurableTransport struct {
	err error
}

func (t *unconfigurableTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
	return nil, t.err
}

// InsecureSkipVerify returns a TLS config that skips certificate verification.
// Only meant for test websites running on self-signed certificates.
func InsecureSkipVerify() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // opt-in via Config.InsecureSkipVerify
		MinVersion:         tls.VersionTLS12,
	}
}
