package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []StringField
		want   map[string]string
	}{
		{
			name: "trims keys and values",
			fields: []StringField{
				{Key: "  " + FieldCommand + "  ", Value: "  grade  "},
			},
			want: map[string]string{FieldCommand: "grade"},
		},
		{
			name: "drops blank keys and values",
			fields: []StringField{
				{Key: FieldRunID, Value: "   "},
				{Key: "   ", Value: "orphan"},
				{Key: FieldProvider, Value: "gemini"},
			},
			want: map[string]string{FieldProvider: "gemini"},
		},
		{
			name: "no fields",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringFields(tt.fields...)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d fields, got %d: %+v", len(tt.want), len(got), got)
			}
			for _, f := range got {
				if tt.want[f.Key] != f.String {
					t.Fatalf("unexpected field %q=%q", f.Key, f.String)
				}
			}
		})
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	if WithFields(nil) == nil {
		t.Fatalf("expected no-op logger when nil provided")
	}
	WithFields(nil, zap.String("question_id", "q1")).Info("no panic")
}

func TestLoggerFieldsCombine(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	run := WithRun(zap.New(core), "grade", "run-42")
	WithCommonFields(run, "gemini", "gemini-2.5-flash").Debug("gemini grade request")
	WithCommonFields(run, "", "").Info("grading completed")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	want := map[string]string{
		FieldCommand:  "grade",
		FieldRunID:    "run-42",
		FieldProvider: "gemini",
		FieldModel:    "gemini-2.5-flash",
	}
	for key, value := range want {
		if ctx[key] != value {
			t.Fatalf("expected %s=%q, got %v", key, value, ctx[key])
		}
	}

	ctx = entries[1].ContextMap()
	if _, ok := ctx[FieldProvider]; ok {
		t.Fatalf("empty provider must be omitted: %v", ctx)
	}
	if ctx[FieldRunID] != "run-42" {
		t.Fatalf("run id must survive on plain entries: %v", ctx)
	}
}
