package observability

// Field is one key/value pair of a structured log entry.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Action names the API action route a log entry belongs to, e.g. "userInfo".
func Action(route string) Field { return Field{Key: "action", Value: route} }

// Err attaches err under the "error" key. Callers must not pass errors that may
// carry the API key; every error built by this module is already redacted.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger receives the client's log entries. Requests, failed calls and canceled
// requests are logged at debug level, error statuses and network failures at
// warn. Implementations may wrap any logging library.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that adds fields to every entry.
	With(fields ...Field) Logger
}

type noopLogger struct{}

// NoopLogger returns a logger that drops every entry. Clients use it unless
// Config.Logger or Config.Debug says otherwise.
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NoopLogger() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(string, ...Field) {}
func (l *noopLogger) Info(string, ...Field)  {}
func (l *noopLogger) Warn(string, ...Field)  {}
func (l *noopLogger) Error(string, ...Field) {}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *noopLogger) With(...Field) Logger { return l }
