package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) *Logger {
	l := New(Config{Level: level, Output: buf, Prefix: "test"})
	l.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false", s)
		}
	}
	for _, s := range []string{"", "trace", "fatal"} {
		if ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = true", s)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Info("encoded %d bytes", 3)

	want := "2024-03-01T12:00:00.000 [INFO] test: encoded 3 bytes\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelWarn)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "[INFO]") {
		t.Errorf("messages below level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: warn") || !strings.Contains(out, "[ERROR] test: error") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug).
		WithComponent("translator").
		WithFields(map[string]any{"stream": "abc", "bytes": 4})

	l.Debug("emit")

	if !strings.HasSuffix(buf.String(), "emit {bytes=4, component=translator, stream=abc}\n") {
		t.Errorf("fields not rendered in order: %q", buf.String())
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := fixedLogger(&buf, LevelDebug)
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestDerivedLoggerSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := fixedLogger(&buf, LevelInfo)
	child := parent.WithComponent("config")

	parent.SetLevel(LevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("child ignored parent level change: %q", buf.String())
	}
	if child.Level() != LevelError {
		t.Errorf("child.Level() = %v, want ERROR", child.Level())
	}
}

func TestDisableEnable(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LevelDebug)

	l.Disable()
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}

	l.Enable()
	l.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("enabled logger wrote %q", buf.String())
	}
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	l := fixedLogger(&first, LevelInfo)
	l.SetOutput(&second)
	l.Info("moved")
	if first.Len() != 0 || !strings.Contains(second.String(), "moved") {
		t.Errorf("SetOutput not honoured: first=%q second=%q", first.String(), second.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	l.WithField("a", 1).Error("still nothing")
}

func TestNewDefaultsOutput(t *testing.T) {
	l := New(Config{})
	if l.sink.output == nil {
		t.Error("expected default output to be set")
	}
}
