// Package logging configures the structured logger every stage writes
// through. It uses the standard library's log/slog rather than a
// third-party frontend: see DESIGN.md for why no ecosystem logging library
// from the corpus is wired here.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// New builds a slog.Logger writing to w, with the given level ("debug",
// "info", "warn", "error") and format ("text" or "json"), tagged with a
// fresh run_id so every line from one invocation can be correlated.
func New(w io.Writer, level, format string) (*slog.Logger, uuid.UUID) {
	runID := uuid.New()
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With("run_id", runID.String())
	return logger, runID
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StageFields returns the common attribute set attached to every log line
// emitted while a given pipeline stage is running.
func StageFields(stage string) []any {
	return []any{"stage", stage}
}

// Wrap adds stage-qualified context to an error without discarding its
// chain, matching the teacher's "sentinel + fmt.Errorf(%w)" convention.
func Wrap(stage string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("stage %s: %w", stage, err)
}
