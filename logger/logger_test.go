package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(buf, &Config{Level: level, Format: FormatJSON}, "test")
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.name != "test" {
		t.Errorf("expected name 'test', got %q", l.name)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: FormatJSON, Output: "stdout"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
	if l.Zerolog().GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected fallback to info, got %s", l.Zerolog().GetLevel())
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env")
	if l.Zerolog().GetLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", l.Zerolog().GetLevel())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "shown" {
		t.Errorf("unexpected message %v", lines[0]["message"])
	}
}

func TestWithDriveAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("scheduler").WithDrive("d-1")
	l.Debug("drive started", Fields(FieldLength, 5))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0][FieldComponent] != "scheduler" {
		t.Errorf("expected component=scheduler, got %v", lines[0][FieldComponent])
	}
	if lines[0][FieldDriveID] != "d-1" {
		t.Errorf("expected drive_id=d-1, got %v", lines[0][FieldDriveID])
	}
	if lines[0][FieldLength] != float64(5) {
		t.Errorf("expected length=5, got %v", lines[0][FieldLength])
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info")

	ctx := ContextWithDriveID(context.Background(), "abc123")
	if DriveIDFromContext(ctx) != "abc123" {
		t.Fatalf("expected drive id in context")
	}
	l.WithContext(ctx).Info("leaf")
	l.WithContext(context.Background()).Info("plain")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0][FieldDriveID] != "abc123" {
		t.Errorf("expected drive_id on first line, got %v", lines[0][FieldDriveID])
	}
	if _, ok := lines[1][FieldDriveID]; ok {
		t.Error("expected no drive_id without context value")
	}
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").
		WithFields(map[string]interface{}{"key": "value"}).
		WithError(fmt.Errorf("boom"))
	l.Error("failed")

	lines := decodeLines(t, &buf)
	if lines[0]["key"] != "value" || lines[0]["error"] != "boom" {
		t.Errorf("unexpected line %v", lines[0])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "info", Format: FormatConsole, NoColor: true}, "test")
	l.Info("hello", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[INF]") || !strings.Contains(out, "hello") || !strings.Contains(out, "k:") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	if l.Enabled(zerolog.ErrorLevel) {
		t.Error("nop logger should not be enabled")
	}
}

func TestInitAndGlobal(t *testing.T) {
	Init(&Config{Level: "info", Format: FormatJSON, Output: "stdout"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}

	custom := NewDefault("custom")
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected SetGlobalLogger to set the global logger")
	}

	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Error("expected default global logger to be created")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	SetGlobalLogger(Nop())
	defer SetGlobalLogger(nil)
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	if WithComponent("x") == nil {
		t.Error("expected component logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"disabled", Config{Level: "disabled", Format: "json"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)
	defer Unregister("my-component")

	if Get("my-component") != l {
		t.Error("expected Get to return the registered logger")
	}
	if Get("unregistered-component") == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "split", "length", 42}, map[string]interface{}{"op": "split", "length": 42}},
		{"odd number of args", []interface{}{"op", "split", "trailing"}, map[string]interface{}{"op": "split"}},
		{"empty", []interface{}{}, map[string]interface{}{}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	fields := ErrorFields("drive", fmt.Errorf("canceled"))
	if fields[FieldOperation] != "drive" || fields[FieldError] != "canceled" {
		t.Errorf("unexpected error fields %v", fields)
	}

	fields = DurationFields("drive", 150*time.Millisecond)
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}
