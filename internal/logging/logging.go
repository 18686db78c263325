package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// thin wrapper so callers only depend on the sugared API
type Logger struct {
	*zap.SugaredLogger
}

// console logger; verbose enables debug output
func NewLogger(verbose bool) *Logger {
	if verbose {
		return newAtLevel(zapcore.DebugLevel)
	}
	return newAtLevel(zapcore.InfoLevel)
}

// NewLevelLogger builds a logger from a textual level ("debug", "info", ...).
// Unknown levels fall back to info.
func NewLevelLogger(level string) *Logger {
	return newAtLevel(parseLevel(level))
}

// discards everything, for tests
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func newAtLevel(level zapcore.Level) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = level > zapcore.DebugLevel
	cfg.Level = zap.NewAtomicLevelAt(level)

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}

	return &Logger{SugaredLogger: base.Sugar()}
}
