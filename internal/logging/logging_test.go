package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevelLoggerHonoursLevel(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{level: "debug", enabled: zapcore.DebugLevel},
		{level: "info", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
		{level: "warn", enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{level: "error", enabled: zapcore.ErrorLevel, muted: zapcore.WarnLevel},
		{level: "bogus", enabled: zapcore.InfoLevel, muted: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			core := NewLevelLogger(tt.level).Desugar().Core()
			assert.True(t, core.Enabled(tt.enabled))
			if tt.level != "debug" {
				assert.False(t, core.Enabled(tt.muted))
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.True(t, NewLogger(true).Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.False(t, NewLogger(false).Desugar().Core().Enabled(zapcore.DebugLevel))
}
