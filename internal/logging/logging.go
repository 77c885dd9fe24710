// Package logging builds the zap logger used across the engine.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much the engine logs.
type Options struct {
	// FilePath is the rotating log file. Empty disables file output.
	FilePath string
	// Verbose raises the console level from warn to debug.
	Verbose bool
}

// New builds a logger that writes JSON lines to a rotating file and
// terse console output to stderr. The console stays at warn level
// unless Verbose is set so CLI output is not drowned in log noise.
func New(opts Options) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	consoleLevel := zap.WarnLevel
	if opts.Verbose {
		consoleLevel = zap.DebugLevel
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	if opts.FilePath == "" {
		return zap.New(consoleCore)
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    10, // Megabytes
		MaxBackups: 3,  // Files
		MaxAge:     30, // Days
		Compress:   true,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.DebugLevel,
	)

	return zap.New(zapcore.NewTee(fileCore, consoleCore))
}
