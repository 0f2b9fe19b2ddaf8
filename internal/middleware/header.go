package middleware

import (
	"maps"
	"net/http"
)

// Header returns a middleware that sets a header on every request, replacing any
// value already present. It is used for the User-Agent every call must carry.
func Header(name, value string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			next:  next,
			name:  name,
			value: value,
		}
	}
}

type headerTransport struct {
	next  http.RoundTripper
	name  string
	value string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request
	req = cloneRequest(req)
	req.Header.Set(t.name, t.value)

	//nolint:wrapcheck // Middleware passes through errors from next handler in chain
	return t.next.RoundTrip(req)
}

// cloneRequest creates a shallow copy of the request with a cloned header map.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req
	r.Header = make(http.Header, len(req.Header))
	maps.Copy(r.Header, req.Header)
	return r
}
