// Package log defines the logging interface shared by every component of the
// transaction processor.
//
// Implementations live in internal/core/infrastructure/log. Components receive
// a Logger through fx and derive child loggers with With("module", name).
package log

import "go.uber.org/zap"

// Logger is the structured logger used across the processor.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Fatal(msg string)
	Fatalf(format string, args ...interface{})

	// With returns a child logger carrying the given key/value pairs.
	With(args ...interface{}) Logger

	// Sync flushes buffered entries.
	Sync() error

	// GetZapLogger exposes the underlying zap logger.
	GetZapLogger() *zap.Logger
}

// Level names accepted by the log configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
	FatalLevel = "fatal"
)
