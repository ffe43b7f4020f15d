// Package logging is the diagnostic logger of arcstd: JSON lines through
// log/slog, written to a file in a log directory or to stderr.
//
// User-facing output (tables, arcs, JSON results) is not logged; commands
// write it to their own writers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// FileName is the log file created inside the log directory.
const FileName = "arcstd.log"

// Logger is safe for concurrent use. Loggers derived with With share the
// underlying handler and file.
type Logger struct {
	logger *slog.Logger
	out    *output
	attrs  []any
}

type output struct {
	mu   sync.Mutex
	file *os.File
}

// NewLogger returns a logger at the given level. With an empty dir it writes
// to stderr, otherwise it appends to dir/arcstd.log, creating dir.
func NewLogger(dir string, level string) (*Logger, error) {
	var w io.Writer = os.Stderr
	out := &output{}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create log directory: %w", err)
		}

		f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		out.file = f
		w = f
	}

	return New(w, level), nil
}

// New returns a logger writing JSON lines to w.
func New(w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	return &Logger{logger: slog.New(h), out: &output{}}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return New(io.Discard, LevelError)
}

func slogLevel(level string) slog.Level {
	switch ParseLevel(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ParseLevel normalizes level; unknown levels are INFO.
func ParseLevel(level string) string {
	switch l := strings.ToUpper(strings.TrimSpace(level)); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l
	}
	return LevelInfo
}

// ValidLevels returns the accepted level names.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}

// IsValidLevel reports whether level names one of ValidLevels, ignoring case.
func IsValidLevel(level string) bool {
	l := strings.ToUpper(strings.TrimSpace(level))
	for _, v := range ValidLevels() {
		if v == l {
			return true
		}
	}
	return false
}

// With returns a child logger adding the key/value pairs to every entry.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	attrs := make([]any, 0, len(l.attrs)+len(args))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, args...)
	return &Logger{logger: l.logger, out: l.out, attrs: attrs}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	all := make([]any, 0, len(l.attrs)+len(args))
	all = append(all, l.attrs...)
	all = append(all, args...)
	l.logger.Log(context.Background(), level, msg, all...)
}

// Close syncs and closes the log file. It is a no-op for stderr and writer
// loggers, and safe to call more than once.
func (l *Logger) Close() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file == nil {
		return nil
	}
	if err := l.out.file.Sync(); err != nil {
		return fmt.Errorf("could not sync log file: %w", err)
	}
	if err := l.out.file.Close(); err != nil {
		return fmt.Errorf("could not close log file: %w", err)
	}
	l.out.file = nil
	return nil
}
