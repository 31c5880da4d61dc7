// Package debug holds the process-wide log/slog logger. Logs are discarded
// until Init is called with enable set.
package debug

import (
	"io"
	"log/slog"
	"sync"
)

var (
	mu     sync.RWMutex
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Init sends debug output to w, or silences it
func Init(enable bool, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if !enable {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Logger returns the current logger
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
