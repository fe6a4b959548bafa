// Package logging builds the service logger.
package logging

import (
	"io"
	"log/slog"
	"os"
)

const productionEnvironment = "production"

// New returns a JSON logger in production and a text logger otherwise.
func New(environment string) *slog.Logger {
	return NewWithWriter(environment, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(environment string, w io.Writer) *slog.Logger {
	if environment == productionEnvironment {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
