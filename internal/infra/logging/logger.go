// Package logging provides file-based logging for taskdeck.
// It outputs logs to both a global log file (<dir>/taskdeck.log)
// and per-collection log files (<dir>/task.log, <dir>/category.log, ...).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/taskdeck/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// GlobalLogFile is the name of the log file that receives every entry.
const GlobalLogFile = "taskdeck.log"

// Logger wraps slog levels with file-based output support.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile *os.File
	kindFiles  map[domain.EntityKind]*os.File
	dir        string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes to dir.
// If dir is empty, logging is disabled (returns a no-op logger).
func New(dir string, level slog.Level) *Logger {
	return &Logger{
		dir:       dir,
		level:     level,
		kindFiles: make(map[domain.EntityKind]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GlobalLogPath returns the path of the global log file in dir.
func GlobalLogPath(dir string) string {
	return filepath.Join(dir, GlobalLogFile)
}

// KindLogPath returns the path of the per-collection log file in dir.
func KindLogPath(dir string, kind domain.EntityKind) string {
	return filepath.Join(dir, string(kind)+".log")
}

// openFile opens a log file for appending, creating the directory if needed.
// Caller must hold l.mu.
func (l *Logger) openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(l.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openFile(GlobalLogPath(l.dir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureKindFile opens or returns the log file for kind.
func (l *Logger) ensureKindFile(kind domain.EntityKind) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.kindFiles[kind]; ok {
		return f, nil
	}
	f, err := l.openFile(KindLogPath(l.dir, kind))
	if err != nil {
		return nil, err
	}
	l.kindFiles[kind] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for kind, f := range l.kindFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.kindFiles, kind)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [task] [sync] message
func formatLog(t time.Time, level slog.Level, kind domain.EntityKind, category, msg string) string {
	scope := "global"
	if kind != "" {
		scope = string(kind)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, when kind is set,
// to the collection's log as well.
func (l *Logger) log(level slog.Level, kind domain.EntityKind, category, msg string) {
	if l.dir == "" {
		return // Logging disabled
	}
	if level < l.level {
		return
	}

	entry := formatLog(time.Now(), level, kind, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}
	if kind != "" {
		if kf, err := l.ensureKindFile(kind); err == nil {
			_, _ = io.WriteString(kf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(kind domain.EntityKind, category, msg string) {
	l.log(slog.LevelInfo, kind, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(kind domain.EntityKind, category, msg string) {
	l.log(slog.LevelDebug, kind, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(kind domain.EntityKind, category, msg string) {
	l.log(slog.LevelWarn, kind, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(kind domain.EntityKind, category, msg string) {
	l.log(slog.LevelError, kind, category, msg)
}

// Tee fans entries out to several loggers.
type Tee []domain.Logger

func (t Tee) Info(kind domain.EntityKind, category, msg string) {
	for _, l := range t {
		l.Info(kind, category, msg)
	}
}

func (t Tee) Debug(kind domain.EntityKind, category, msg string) {
	for _, l := range t {
		l.Debug(kind, category, msg)
	}
}

func (t Tee) Warn(kind domain.EntityKind, category, msg string) {
	for _, l := range t {
		l.Warn(kind, category, msg)
	}
}

func (t Tee) Error(kind domain.EntityKind, category, msg string) {
	for _, l := range t {
		l.Error(kind, category, msg)
	}
}

// SlogAdapter forwards entries to a *slog.Logger as structured records.
type SlogAdapter struct {
	Logger *slog.Logger
}

func (a SlogAdapter) attrs(kind domain.EntityKind, category string) []any {
	attrs := []any{slog.String("category", category)}
	if kind != "" {
		attrs = append(attrs, slog.String("kind", string(kind)))
	}
	return attrs
}

func (a SlogAdapter) Info(kind domain.EntityKind, category, msg string) {
	a.Logger.Info(msg, a.attrs(kind, category)...)
}

func (a SlogAdapter) Debug(kind domain.EntityKind, category, msg string) {
	a.Logger.Debug(msg, a.attrs(kind, category)...)
}

func (a SlogAdapter) Warn(kind domain.EntityKind, category, msg string) {
	a.Logger.Warn(msg, a.attrs(kind, category)...)
}

func (a SlogAdapter) Error(kind domain.EntityKind, category, msg string) {
	a.Logger.Error(msg, a.attrs(kind, category)...)
}
