package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"2", DEBUG},
		{"errors", ERROR},
		{"error", ERROR},
		{"1", ERROR},
		{"off", SILENT},
		{"silent", SILENT},
		{"none", SILENT},
		{"0", SILENT},
		{"garbage", ERROR},
		{"", ERROR},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrorLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(ERROR)
	log.SetOutput(&buf)

	log.Debug("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("debug message leaked at error level: %q", buf.String())
	}

	log.Error("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("error message missing: %q", buf.String())
	}
}

func TestSilentDropsEverything(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(SILENT)
	log.SetOutput(&buf)

	log.Debug("debug")
	log.Error("error")
	if buf.Len() != 0 {
		t.Errorf("silent logger produced output: %q", buf.String())
	}
}

func TestDebugLevelPassesBoth(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(DEBUG)
	log.SetOutput(&buf)

	log.Debug("first")
	log.Error("second")

	out := buf.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("debug logger dropped messages: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(ERROR, &buf)

	log.Error("broken clock", map[string]interface{}{"clock": "boottime"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "ERROR" || entry.Message != "broken clock" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Fields["clock"] != "boottime" {
		t.Errorf("fields = %v", entry.Fields)
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(ERROR, &buf)

	child := log.WithField("interval", "Test1")
	child.Error("oops")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry.Fields["interval"] != "Test1" {
		t.Errorf("fields = %v", entry.Fields)
	}

	// The parent logger is unchanged.
	buf.Reset()
	log.Error("parent")
	entry = LogEntry{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if _, ok := entry.Fields["interval"]; ok {
		t.Error("WithField mutated the parent logger")
	}
}
