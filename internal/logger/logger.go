// Package logger builds the zap logger shared by both checkers.
//
// Diagnostics go to stderr in console encoding so that stdout carries only the
// report or monitoring line. The -d/--debug verbosity maps onto zap levels:
//
//	0  warnings and errors
//	1  info (excluded balancers, deleted certificates)
//	2  debug (per-call detail, flag failures)
package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MaxVerbosity is the highest accepted -d value.
const MaxVerbosity = 2

// Level maps a verbosity to a zap level. Values above MaxVerbosity are clamped.
func Level(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New creates a console logger on stderr tagged with the command name and a
// fresh run ID.
func New(command string, verbosity int) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(Level(verbosity))
	config.Encoding = "console"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"
	config.DisableStacktrace = true
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("command", command), zap.String("run_id", uuid.NewString())), nil
}
