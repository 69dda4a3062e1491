package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Init builds the demo command's logger: a text handler on stdout, plus a
// capture handler so the last log line can be inspected (e.g. by a test),
// following the teacher's multi-handler Init pattern in miniature — the
// scoring engine itself never logs (spec.md §5: a pure function), only this
// command's wiring does.
func Init(level string) (*slog.Logger, func(), error) {
	lvl := parseLevel(level)

	opts := &slog.HandlerOptions{Level: lvl, AddSource: lvl == slog.LevelDebug}
	stdoutHandler := slog.NewTextHandler(os.Stdout, opts)
	captureHandler := slog.NewTextHandler(GlobalLogCapture, &slog.HandlerOptions{Level: lvl})

	handler := &multiHandler{handlers: []slog.Handler{stdoutHandler, captureHandler}}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, func() {}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// nolint:gocritic // r must be passed by value to implement slog.Handler
func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return fmt.Errorf("logging: handle: %w", err)
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
