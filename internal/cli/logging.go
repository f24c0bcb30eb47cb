package cli

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// newLogger returns a text logger on w tagged with a fresh run id. Verbose
// lowers the level to Debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", newRunID())
}

// newRunID generates a UUID v7 for log correlation.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
