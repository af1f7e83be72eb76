package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	level  = new(slog.LevelVar)
	logger atomic.Pointer[slog.Logger]
)

func init() {
	level.Set(slog.LevelInfo)
	SetOutput(os.Stdout)
}

// SetLevel sets the minimum level for the process logger
func SetLevel(l Level) {
	level.Set(l.slog())
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger.Store(slog.New(h))
}

// Logger is a logger carrying structured fields
type Logger struct {
	l *slog.Logger
}

// With returns a logger that adds the given key/value pairs to every entry
func With(args ...any) *Logger {
	return &Logger{l: logger.Load().With(args...)}
}

func (lg *Logger) Debugf(format string, args ...any) { lg.l.Debug(fmt.Sprintf(format, args...)) }
func (lg *Logger) Infof(format string, args ...any)  { lg.l.Info(fmt.Sprintf(format, args...)) }
func (lg *Logger) Warnf(format string, args ...any)  { lg.l.Warn(fmt.Sprintf(format, args...)) }
func (lg *Logger) Errorf(format string, args ...any) { lg.l.Error(fmt.Sprintf(format, args...)) }

func Debug(msg string) { logger.Load().Debug(msg) }
func Info(msg string)  { logger.Load().Info(msg) }
func Warn(msg string)  { logger.Load().Warn(msg) }
func Error(msg string) { logger.Load().Error(msg) }

func Debugf(format string, args ...any) { logger.Load().Debug(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { logger.Load().Info(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { logger.Load().Warn(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { logger.Load().Error(fmt.Sprintf(format, args...)) }

// Fatalf logs at error level and exits the process
func Fatalf(format string, args ...any) {
	logger.Load().Log(context.Background(), slog.LevelError, fmt.Sprintf(format, args...))
	os.Exit(1)
}
