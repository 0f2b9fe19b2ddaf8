package observability

import "github.com/rs/zerolog"

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger to the Logger interface.
//
//	client, err := nameless.NewWithConfig(&nameless.Config{
//		Host:   "https://example.com",
//		APIKey: apiKey,
//		Logger: observability.NewZerologLogger(zerolog.New(os.Stderr)),
//	})
//
//nolint:ireturn // Factory function must return interface for dependency injection pattern
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) { write(l.logger.Debug(), msg, fields) }
func (l *zerologLogger) Info(msg string, fields ...Field)  { write(l.logger.Info(), msg, fields) }
func (l *zerologLogger) Warn(msg string, fields ...Field)  { write(l.logger.Warn(), msg, fields) }
func (l *zerologLogger) Error(msg string, fields ...Field) { write(l.logger.Error(), msg, fields) }

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *zerologLogger) With(fields ...Field) Logger {
	ctx := l.logger.With()
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			ctx = ctx.AnErr(f.Key, err)
			continue
		}
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &zerologLogger{logger: ctx.Logger()}
}

// write is a no-op when the level is disabled, zerolog returns a nil event then.
func write(event *zerolog.Event, msg string, fields []Field) {
	if event == nil {
		return
	}
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			event = event.AnErr(f.Key, err)
			continue
		}
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}
