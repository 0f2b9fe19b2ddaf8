package nameless

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/namelessmc/go-nameless/internal/middleware"
)

// APIRoutePrefix is the route under which the website serves API version 2.
const APIRoutePrefix = "/api/v2/"

// Endpoint is the base address of a website's API, API key included.
// The zero value is not usable; build one with NewEndpoint or ParseEndpoint.
type Endpoint struct {
	base         url.URL
	route        string // e.g. /api/v2/<key>
	routeInQuery bool
	extraQuery   string
	apiKey       string
}

// NewEndpoint builds the endpoint of the website at host, which is the site root
// such as https://example.com. The API is addressed through index.php so it works
// whether or not the site has friendly URLs enabled.
func NewEndpoint(host, apiKey string) (Endpoint, error) {
	if err := validateAPIKey(apiKey); err != nil {
		return Endpoint{}, err
	}
	return ParseEndpoint(strings.TrimRight(host, "/") + "/index.php?route=" + APIRoutePrefix + apiKey)
}

// ParseEndpoint parses a full API URL as shown in the website's StaffCP, in either
// of these forms:
//
//	https://example.com/index.php?route=/api/v2/<key>
//	https://example.com/api/v2/<key>
func ParseEndpoint(raw string) (Endpoint, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Endpoint{}, errors.Wrap(err, "parse API URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, errors.Newf("API URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return Endpoint{}, errors.New("API URL has no host")
	}

	ep := Endpoint{}

	query := u.Query()
	if route := query.Get("route"); route != "" {
		ep.routeInQuery = true
		ep.route = strings.TrimRight(route, "/")
		query.Del("route")
		ep.extraQuery = query.Encode()
		if u.Path == "" {
			u.Path = "/"
		}
	} else {
		ep.route = strings.TrimRight(u.Path, "/")
		ep.extraQuery = u.RawQuery
		u.Path = ""
	}

	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	ep.base = *u

	key, ok := keyFromRoute(ep.route)
	if !ok {
		return Endpoint{}, errors.New("API URL does not end in /api/<version>/<key>")
	}
	ep.apiKey = key

	return ep, nil
}

// keyFromRoute returns the segment after /api/<version>/ when it is the last one.
func keyFromRoute(route string) (string, bool) {
	_, rest, found := strings.Cut(route, "/api/")
	if !found {
		return "", false
	}
	_, key, found := strings.Cut(rest, "/")
	if !found || validateAPIKey(key) != nil {
		return "", false
	}
	return key, true
}

func validateAPIKey(key string) error {
	if key == "" {
		return errors.New("API key is required")
	}
	if strings.ContainsAny(key, "/?#&= \t\r\n") {
		return errors.New("API key contains characters that are not allowed in a URL path segment")
	}
	return nil
}

// URL returns a fresh URL addressing action. Callers may modify it.
func (e Endpoint) URL(action Action) *url.URL {
	u := e.base
	if u.User != nil {
		user := *u.User
		u.User = &user
	}

	target := e.route + "/" + action.Route()
	if e.routeInQuery {
		u.RawQuery = "route=" + target
		if e.extraQuery != "" {
			u.RawQuery += "&" + e.extraQuery
		}
		return &u
	}

	u.Path = strings.TrimRight(e.base.Path, "/") + target
	u.RawQuery = e.extraQuery
	return &u
}

// APIKey returns the key embedded in the endpoint. It is only exposed so that
// callers can scrub it from their own logs.
func (e Endpoint) APIKey() string { return e.apiKey }

// IsZero reports whether e was never initialised.
func (e Endpoint) IsZero() bool { return e.apiKey == "" }

// Redact replaces the API key in s.
func (e Endpoint) Redact(s string) string { return middleware.RedactSecret(s, e.apiKey) }

// String returns the endpoint URL with the API key redacted.
func (e Endpoint) String() string {
	if e.IsZero() {
		return ""
	}
	u := e.base
	route := strings.TrimSuffix(e.route, e.apiKey) + middleware.Redacted
	if e.routeInQuery {
		u.RawQuery = "route=" + route
		if e.extraQuery != "" {
			u.RawQuery += "&" + e.extraQuery
		}
	} else {
		u.Path = route
		u.RawQuery = e.extraQuery
	}
	return u.String()
}
