package logger

import (
	"os"

	"gitlab.com/wizardhub.net/internal/adapter/logging"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
)

// Logger is the bootstrap logger used by main before configuration is loaded
var Logger primary.Logger = logging.New(os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"), os.Stderr)

// Configure replaces the bootstrap logger once configuration is known
func Configure(l primary.Logger) {
	if l != nil {
		Logger = l
	}
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
