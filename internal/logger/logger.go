// Package logger wraps log/slog with a package-level default logger used for
// diagnostic output. User-facing pass/fail lines go through package report.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// InitLogger configures the default logger. With verbose set, debug records
// are emitted; otherwise only warnings and errors reach w.
func InitLogger(w io.Writer, verbose bool) {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
}

// SetLogger replaces the default logger instance.
func SetLogger(l *slog.Logger) {
	defaultLogger = l
}

// checkLogger ensures the logger is initialized before use, preventing nil panics.
func checkLogger() {
	if defaultLogger == nil {
		InitLogger(os.Stderr, false)
	}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	checkLogger()
	defaultLogger.Debug(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	checkLogger()
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	checkLogger()
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	checkLogger()
	defaultLogger.Error(msg, args...)
}

// Debugf logs a formatted debug message.
// Note: slog prefers structured logging over formatted strings.
func Debugf(format string, v ...any) {
	checkLogger()
	defaultLogger.Debug(fmt.Sprintf(format, v...))
}
