package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		enabled zapcore.Level
		wantErr bool
	}{
		{"console info", "info", "console", zapcore.InfoLevel, false},
		{"json debug", "debug", "json", zapcore.DebugLevel, false},
		{"default format", "warn", "", zapcore.WarnLevel, false},
		{"bad level", "loud", "console", 0, true},
		{"bad format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("level %v not enabled", tt.enabled)
			}
			if tt.enabled > zapcore.DebugLevel && logger.Core().Enabled(tt.enabled-1) {
				t.Errorf("level below %v enabled", tt.enabled)
			}
		})
	}
}

func TestNop(t *testing.T) {
	if Nop().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Nop() logger is enabled")
	}
}
