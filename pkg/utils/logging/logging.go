package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Format selects the log output encoding
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

var (
	mu            sync.RWMutex
	defaultLogger = newLogger(os.Stderr, slog.LevelInfo, FormatConsole)
)

// redactor masks investigation-subject attributes in log output. Subject
// values are PII of the person under investigation and must never land in
// log files.
func redactor() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("Subject"),
		masq.WithFieldName("Values"),
		masq.WithFieldPrefix("subject_"),
	)
}

func newLogger(w io.Writer, level slog.Level, format Format) *slog.Logger {
	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: redactor(),
		}))
	default:
		return slog.New(clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(redactor()),
		))
	}
}

// Configure replaces the process-wide default logger
func Configure(w io.Writer, level slog.Level, format Format) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = newLogger(w, level, format)
}

// Default returns the process-wide default logger
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

type ctxLoggerKey struct{}

// With embeds a logger into the context
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From extracts the logger from the context, falling back to Default
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
