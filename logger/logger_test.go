package logger

import (
	"testing"

	"contesthub/config"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug", Development: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug to be enabled")
	}

	log, err = New(config.LogConfig{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) || !log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info to be the default level")
	}

	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
