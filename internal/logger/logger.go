// Package logger is a small leveled logger. Output is discarded unless a log
// file is configured: while the dashboard owns the terminal, stdout and
// stderr are not available for diagnostics.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Environment variables read by New.
const (
	EnvLevel = "OSCAMP_LOG_LEVEL"
	EnvFile  = "OSCAMP_LOG_FILE"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger writes "[LEVEL] message" lines at or above its level.
type Logger struct {
	mu     sync.Mutex
	level  Level
	logger *log.Logger
	file   *os.File
}

// Default is the logger behind the package-level functions.
var Default = New()

// New creates a logger configured from OSCAMP_LOG_LEVEL and OSCAMP_LOG_FILE.
// Invalid values are ignored.
func New() *Logger {
	l := &Logger{
		level:  LevelInfo,
		logger: log.New(io.Discard, "", log.LstdFlags),
	}
	if lvl, err := ParseLevel(os.Getenv(EnvLevel)); err == nil {
		l.level = lvl
	}
	if path := os.Getenv(EnvFile); path != "" {
		_ = l.openFile(path)
	}
	return l
}

// Configure applies a level and log file, typically taken from the loaded
// configuration. An empty path leaves the current output in place.
func (l *Logger) Configure(level, path string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	if path == "" {
		return nil
	}
	return l.openFile(path)
}

func (l *Logger) openFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.logger.SetOutput(f)
	return nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.logger.SetOutput(io.Discard)
	return err
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

func (l *Logger) Debug(format string, v ...any) { l.log(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...any)  { l.log(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...any)  { l.log(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...any) { l.log(LevelError, format, v...) }

func (l *Logger) log(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	l.logger.Printf("[%s] %s", level, fmt.Sprintf(format, v...))
}

// Package-level functions that use the default logger

func Debug(format string, v ...any) { Default.Debug(format, v...) }
func Info(format string, v ...any)  { Default.Info(format, v...) }
func Warn(format string, v ...any)  { Default.Warn(format, v...) }
func Error(format string, v ...any) { Default.Error(format, v...) }

// Configure configures the default logger.
func Configure(level, path string) error { return Default.Configure(level, path) }

// Close closes the default logger
func Close() error { return Default.Close() }
