package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault()
	if l == nil {
		t.Fatal("NewDefault returned nil")
	}
	if l.level != INFO {
		t.Errorf("Expected default level INFO, got %v", l.level)
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %s, want %s", tt.level, got, tt.expected)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf, Component: "test"})

	l.Info("hello", map[string]interface{}{"count": 3})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "hello" {
		t.Errorf("Expected message 'hello', got %s", entry.Message)
	}
	if entry.Component != "test" {
		t.Errorf("Expected component 'test', got %s", entry.Component)
	}
	if entry.Fields["count"] != float64(3) {
		t.Errorf("Expected field count=3, got %v", entry.Fields["count"])
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Format: TextFormat, Output: &buf, Component: "charts"})

	l.Warn("slow render")

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("Expected WARN in output, got: %s", out)
	}
	if !strings.Contains(out, "[charts]") {
		t.Errorf("Expected component in output, got: %s", out)
	}
	if !strings.Contains(out, "slow render") {
		t.Errorf("Expected message in output, got: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: WARN, Format: TextFormat, Output: &buf})

	l.Debug("not logged")
	l.Info("not logged either")
	if buf.Len() != 0 {
		t.Errorf("Expected no output below WARN level, got: %s", buf.String())
	}

	l.Warn("logged")
	if buf.Len() == 0 {
		t.Error("Expected WARN to be logged")
	}
}

func TestErrorIncludesError(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf})

	l.Error("fetch failed", errTest)

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("Expected error 'boom', got %s", entry.Error)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: DEBUG, Format: TextFormat, Output: &buf})
	child := base.WithComponent("fetchers")

	child.Info("fetching")
	if !strings.Contains(buf.String(), "[fetchers]") {
		t.Errorf("Expected child component in output, got: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug") != DEBUG {
		t.Error("Expected 'debug' to parse to DEBUG")
	}
	if parseLogLevel("WARNING") != WARN {
		t.Error("Expected 'WARNING' to parse to WARN")
	}
	if parseLogLevel("bogus") != -1 {
		t.Error("Expected unknown level to parse to -1")
	}
}

type testError struct{}

func (testError) Error() string { return "boom" }

var errTest = testError{}
