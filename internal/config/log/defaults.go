package log

import (
	"go.uber.org/zap/zapcore"
)

// Log configuration defaults.
const (
	defaultLogLevel  = "info"
	defaultToConsole = true
	defaultFilePath  = "stdout"

	// Rotation, in megabytes / files / days.
	defaultMaxSize    = 100
	defaultMaxBackups = 10
	defaultMaxAge     = 30
	defaultCompress   = true

	defaultEnableCaller     = true
	defaultEnableStacktrace = true

	// Level applied to log lines emitted by contracts through log_buffer.
	defaultContractLogLevel = "info"
)

var defaultLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"panic": zapcore.PanicLevel,
	"fatal": zapcore.FatalLevel,
}
