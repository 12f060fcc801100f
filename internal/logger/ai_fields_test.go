package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCommonFieldsSkipsEmptyValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider string
		model    string
		expect   int
	}{
		{name: "both set", provider: "gemini", model: "gemini-2.5-flash", expect: 2},
		{name: "model missing", provider: "gemini", model: "  ", expect: 1},
		{name: "both missing", provider: "", model: "", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := len(CommonFields(tt.provider, tt.model)); got != tt.expect {
				t.Fatalf("expected %d fields, got %d", tt.expect, got)
			}
		})
	}
}

func TestWithCommonFieldsNilLogger(t *testing.T) {
	t.Parallel()

	logger := WithCommonFields(nil, "gemini", "model")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	// Must not panic.
	logger.Info("hello")
}

func TestWithCommonFieldsAttachesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := WithCommonFields(zap.New(core), "gemini", "gemini-2.5-flash")

	logger.Info("request")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "gemini" {
		t.Fatalf("unexpected provider field: %v", ctx[FieldProvider])
	}
	if ctx[FieldModel] != "gemini-2.5-flash" {
		t.Fatalf("unexpected model field: %v", ctx[FieldModel])
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{name: "non-positive limit", input: "hello", limit: 0, expect: ""},
		{name: "shorter than limit", input: "hello", limit: 10, expect: "hello"},
		{name: "truncated", input: "hello world", limit: 5, expect: "hello..."},
		{name: "trims whitespace", input: "  spaced  ", limit: 10, expect: "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
