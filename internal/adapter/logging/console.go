package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"gitlab.com/wizardhub.net/internal/core/ports/primary"
)

var _ primary.Logger = (*ConsoleLogger)(nil)

// ConsoleLogger writes coloured human-readable lines, for local runs
type ConsoleLogger struct {
	logger *slog.Logger
}

func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      parseSlogLevel(level),
		TimeFormat: time.Kitchen,
	})
	return &ConsoleLogger{logger: slog.New(handler)}
}

func parseSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(msg, args...)
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.logger.Info(msg, args...)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(msg, args...)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.logger.Error(msg, args...)
}

// New picks the logger for a format: "console" gives ConsoleLogger, anything else zap JSON
func New(format, level string, w io.Writer) primary.Logger {
	if format == "console" {
		return NewConsoleLogger(w, level)
	}
	return NewZapLogger(level)
}
