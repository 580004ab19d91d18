// Package logging provides the shared zap logger for prefkit.
//
// Logging is silent unless a level is set explicitly or through the
// PREFKIT_LOG_LEVEL environment variable. Valid levels: debug, info, warn,
// error.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar controls logging verbosity when Initialize is called with an
// empty level. When unset, logging is disabled.
const LogLevelEnvVar = "PREFKIT_LOG_LEVEL"

var (
	mu     sync.Mutex
	logger = zap.NewNop()
)

// Initialize creates the package logger at the given level. An empty level
// falls back to PREFKIT_LOG_LEVEL; if that is also empty, the logger stays a
// nop.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		mu.Lock()
		logger = zap.NewNop()
		mu.Unlock()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// L returns the current logger. Never nil.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Sync flushes buffered log entries. Safe to call on the nop logger.
func Sync() {
	_ = L().Sync()
}
