// Package log provides category-filtered structured logging for outbreak.
//
// The CLI owns stdout for rendered deck state, so log output always goes to
// a file (or nowhere). Logging starts disabled; the root command calls
// InitFile when the config names a log file. Every call site tags its
// category, which keeps grep-ability when one debug session only cares
// about, say, CatStore.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// Category tags a log line with the subsystem it came from.
type Category string

const (
	// CatDeck covers domain mutations (draw, reshuffle, mark).
	CatDeck Category = "deck"
	// CatStore covers snapshot load/save.
	CatStore Category = "store"
	// CatDB covers the sqlite history ledger.
	CatDB Category = "db"
	// CatConfig covers config loading and validation.
	CatConfig Category = "config"
	// CatUI covers the watch TUI.
	CatUI Category = "ui"
	// CatTrace covers tracer setup and shutdown.
	CatTrace Category = "trace"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.DiscardHandler))
}

// Init routes log output to w at the given level. Mostly useful from tests;
// commands use InitFile.
func Init(w io.Writer, level slog.Level) {
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// InitFile routes log output to the file at path, creating or appending as
// needed. The returned closer flushes the sink; callers defer it for the
// life of the process.
func InitFile(path string, level slog.Level) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	Init(f, level)
	return f, nil
}

// ParseLevel converts a config-file level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Debug logs a debug message under the given category.
func Debug(cat Category, msg string, args ...any) {
	logger.Load().Debug(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Info logs an info message under the given category.
func Info(cat Category, msg string, args ...any) {
	logger.Load().Info(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Warn logs a warning under the given category.
func Warn(cat Category, msg string, args ...any) {
	logger.Load().Warn(msg, append([]any{"cat", string(cat)}, args...)...)
}

// Error logs an error message under the given category.
func Error(cat Category, msg string, args ...any) {
	logger.Load().Error(msg, append([]any{"cat", string(cat)}, args...)...)
}

// ErrorErr logs an error message with the error value attached.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	Error(cat, msg, append([]any{"error", err}, args...)...)
}

// SafeGo runs fn on a new goroutine and turns a panic into an error log
// instead of a process crash. name identifies the goroutine in the log.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Error(CatUI, "goroutine panic", "goroutine", name, "panic", r, "stack", string(debug.Stack()))
			}
		}()
		fn()
	}()
}
