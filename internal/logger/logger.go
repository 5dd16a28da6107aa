package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	NONE
)

var (
	level     = new(slog.LevelVar)
	disabled  atomic.Bool
	stdLogger atomic.Pointer[slog.Logger]
)

func init() {
	stdLogger.Store(newLogger(os.Stderr))
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("app", "tonecheck")
}

// ParseLevel maps a level name to a LogLevel. Unknown names fall back to INFO.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "none", "off":
		return NONE
	default:
		return INFO
	}
}

func Init(logfilePath string, levelStr string) error {
	SetLevel(ParseLevel(levelStr))

	var out io.Writer = os.Stderr
	if logfilePath != "" {
		dir := filepath.Dir(logfilePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(logfilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		out = io.MultiWriter(os.Stderr, f)
	}
	stdLogger.Store(newLogger(out))
	return nil
}

// SetOutput redirects all log output, mainly for tests and the TUI.
func SetOutput(w io.Writer) {
	stdLogger.Store(newLogger(w))
}

func SetLevel(l LogLevel) {
	disabled.Store(l == NONE)
	switch l {
	case DEBUG:
		level.Set(slog.LevelDebug)
	case WARN:
		level.Set(slog.LevelWarn)
	case ERROR:
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// Slog returns the underlying structured logger.
func Slog() *slog.Logger {
	if disabled.Load() {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return stdLogger.Load()
}

func Debug(msg string, args ...any) {
	if !disabled.Load() {
		stdLogger.Load().Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if !disabled.Load() {
		stdLogger.Load().Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if !disabled.Load() {
		stdLogger.Load().Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if !disabled.Load() {
		stdLogger.Load().Error(msg, args...)
	}
}
