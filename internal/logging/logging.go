// Package logging builds the process logger from the -v count.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelFor maps a -v count to a level: 0 warn, 1 info, 2 or more debug.
func LevelFor(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Config returns the zap config used for the given verbosity. Output goes
// to stderr so stdout stays clean for reports.
func Config(verbosity int) zap.Config {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(LevelFor(verbosity))
	config.Development = false
	config.DisableStacktrace = true
	config.DisableCaller = verbosity < 2
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if verbosity < 2 {
		config.EncoderConfig.TimeKey = ""
	}
	return config
}

// New builds a console logger for the given verbosity.
func New(verbosity int) (*zap.Logger, error) {
	logger, err := Config(verbosity).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
