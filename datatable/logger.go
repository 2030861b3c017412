package datatable

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with table-specific helpers so that every
// operation logs the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogBuild logs a table construction.
func (l *Logger) LogBuild(ctx context.Context, source string, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"source", source,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "build completed",
		"source", source,
		"rows", rows,
		"cols", cols,
	)
}

// LogConvert logs a conversion to column-major form.
func (l *Logger) LogConvert(ctx context.Context, typed bool, rows, cols int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "convert failed",
			"typed", typed,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "convert completed",
		"typed", typed,
		"rows", rows,
		"cols", cols,
	)
}

// LogMutate logs a row-sequence mutation.
func (l *Logger) LogMutate(ctx context.Context, op string, rows int) {
	l.DebugContext(ctx, "mutate",
		"op", op,
		"rows", rows,
	)
}
