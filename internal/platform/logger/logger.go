package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Handlers and services take it
// as a dependency rather than reaching for a global.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
