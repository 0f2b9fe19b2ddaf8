// Package observability provides interfaces for logging and metrics collection
// in the go-nameless library.
//
// This package defines standard interfaces that allow users to integrate their
// own logging and metrics implementations with the NamelessMC API client.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	client, err := nameless.NewWithConfig(&nameless.Config{
//		Host:   "https://example.com",
//		APIKey: apiKey,
//		Logger: observability.NewZerologLogger(zerolog.New(os.Stderr)),
//	})
//
// Any type with Debug, Info, Warn, Error and With methods can be used instead of
// the bundled zerolog adapter.
//
// Request URLs are logged with the API key replaced by "REDACTED".
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks API client metrics:
//
//	client, err := nameless.NewWithConfig(&nameless.Config{
//		Host:    "https://example.com",
//		APIKey:  apiKey,
//		Metrics: myRecorder{},
//	})
//
// Tracked metrics include HTTP request counts with status and duration, time
// spent in the optional client-side rate limiter, and failed calls by error
// kind.
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, the client uses no-op
// implementations that discard all events.
package observability
