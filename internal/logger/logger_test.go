package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{name: "console info", level: zapcore.InfoLevel},
		{name: "json debug", json: true, debug: true, level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.json, tt.debug)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !logger.Core().Enabled(tt.level) {
				t.Fatalf("expected level %s to be enabled", tt.level)
			}
			if tt.level == zapcore.InfoLevel && logger.Core().Enabled(zapcore.DebugLevel) {
				t.Fatalf("debug must be disabled without the debug flag")
			}
		})
	}
}

func TestWithRun(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithRun(zap.New(core), "forecast", "run-1").Info("forecast computed")
	WithRun(zap.New(core), "risk", "").Info("risk computed")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldCommand] != "forecast" || ctx[FieldRunID] != "run-1" {
		t.Fatalf("unexpected fields: %v", ctx)
	}

	ctx = entries[1].ContextMap()
	if _, ok := ctx[FieldRunID]; ok {
		t.Fatalf("empty run id must be omitted: %v", ctx)
	}

	if WithRun(nil, "grade", "run-2") == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}
