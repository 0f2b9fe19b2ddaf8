package nameless

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/namelessmc/go-nameless/envelope"
	"github.com/namelessmc/go-nameless/internal/httpclient"
	"github.com/namelessmc/go-nameless/internal/middleware"
	"github.com/namelessmc/go-nameless/observability"
)

const (
	// Version is the library version sent in the default User-Agent.
	Version = "0.1.0"

	// DefaultUserAgent identifies the library to the website.
	DefaultUserAgent = "Nameless-Go-API/" + Version

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client talks to one NamelessMC website. It is safe for concurrent use.
type Client struct {
	endpoint   Endpoint
	dispatcher *Dispatcher
	logger     observability.Logger
}

// Compile-time check to ensure Client implements API interface.
var _ API = (*Client)(nil)

// Config holds configuration for the NamelessMC API client.
type Config struct {
	// Endpoint is the full API address. When zero it is built from Host and APIKey.
	Endpoint Endpoint

	// Host is the website root, e.g. https://example.com
	Host string

	// APIKey is the key shown in StaffCP > Configuration > API
	APIKey string

	// UserAgent is sent with every request (defaults to DefaultUserAgent)
	UserAgent string

	// Timeout bounds each call, body included (defaults to 30 seconds)
	Timeout time.Duration

	// Debug logs every request and response body at debug level. Without a Logger
	// it installs a zerolog console logger on stderr.
	Debug bool

	// HTTPClient is the base HTTP client (optional). It is copied, not modified.
	HTTPClient *http.Client

	// InsecureSkipVerify disables TLS certificate verification. With a custom
	// HTTPClient it requires HTTPClient.Transport to be nil or an *http.Transport.
	InsecureSkipVerify bool

	// RateLimitPerMinute spaces calls client side; zero disables limiting
	RateLimitPerMinute int

	// Logger for observability (optional, uses noop logger if nil)
	Logger observability.Logger

	// Metrics recorder for observability (optional, uses noop recorder if nil)
	Metrics observability.MetricsRecorder
}

// New creates a client for the website at host with default settings.
//
// Example:
//
//	client, err := nameless.New("https://example.com", "your-api-key")
func New(host, apiKey string) (*Client, error) {
	return NewWithConfig(&Config{
		Host:   host,
		APIKey: apiKey,
	})
}

// NewWithConfig creates a client with custom configuration.
//
// Example:
//
//	client, err := nameless.NewWithConfig(&nameless.Config{
//	    Host:               "https://example.com",
//	    APIKey:             "your-api-key",
//	    UserAgent:          "MyPlugin/1.0",
//	    Timeout:            10 * time.Second,
//	    RateLimitPerMinute: 120,
//	})
func NewWithConfig(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	endpoint := cfg.Endpoint
	if endpoint.IsZero() {
		if cfg.Host == "" {
			return nil, errors.New("host or endpoint is required")
		}
		var err error
		endpoint, err = NewEndpoint(cfg.Host, cfg.APIKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid endpoint")
		}
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.InsecureSkipVerify && cfg.HTTPClient != nil && !middleware.CanConfigureTLS(cfg.HTTPClient.Transport) {
		return nil, errors.Wrapf(middleware.ErrTLSNotConfigurable,
			"InsecureSkipVerify cannot be applied to HTTPClient.Transport of type %T", cfg.HTTPClient.Transport)
	}
	if cfg.RateLimitPerMinute < 0 {
		return nil, errors.Newf("rate limit must not be negative, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.Logger == nil {
		if cfg.Debug {
			cfg.Logger = debugLogger()
		} else {
			cfg.Logger = observability.NoopLogger()
		}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetricsRecorder()
	}

	// Order from outside to inside: Observability -> RateLimit -> Header
	chain := []httpclient.Middleware{
		middleware.Observability(cfg.Logger, cfg.Metrics, endpoint.APIKey()),
	}
	if cfg.RateLimitPerMinute > 0 {
		chain = append(chain, middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: middleware.PerMinute(cfg.RateLimitPerMinute),
			Logger:  cfg.Logger,
			Metrics: cfg.Metrics,
		}))
	}
	chain = append(chain,
		middleware.Header("User-Agent", cfg.UserAgent),
		middleware.Header("Accept", "application/json"),
	)
	if cfg.InsecureSkipVerify {
		chain = append(chain, middleware.TLSConfig(middleware.InsecureSkipVerify()))
	}

	httpClient := httpclient.New(
		httpclient.WithHTTPClient(cfg.HTTPClient),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithMiddleware(chain...),
	)

	transport := NewTransport(httpClient.HTTPClient(), cfg.Logger, cfg.Debug)

	return &Client{
		endpoint:   endpoint,
		dispatcher: NewDispatcher(transport, endpoint, cfg.Logger, cfg.Metrics),
		logger:     cfg.Logger,
	}, nil
}

func debugLogger() observability.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}
	return observability.NewZerologLogger(
		zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Str("component", "nameless").Logger(),
	)
}

// Endpoint returns the API endpoint the client talks to.
func (c *Client) Endpoint() Endpoint { return c.endpoint }

// Call performs a raw action. Domain methods are built on it; use it directly for
// actions or parameters they do not cover.
func (c *Client) Call(ctx context.Context, action Action, params ...Param) (envelope.Payload, error) {
	return c.dispatcher.Call(ctx, action, params...)
}
