package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel, "json", "")

	l.Info("dataset loaded", String("source", "csv"), Int("records", 3), Error(errors.New("boom")))

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if out["message"] != "dataset loaded" {
		t.Fatalf("unexpected message %v", out["message"])
	}
	if out["source"] != "csv" {
		t.Fatalf("unexpected source %v", out["source"])
	}
	if out["records"] != float64(3) {
		t.Fatalf("unexpected records %v", out["records"])
	}
	if out["error"] != "boom" {
		t.Fatalf("unexpected error %v", out["error"])
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.WarnLevel, "json", "")

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected warn output")
	}
}

func TestWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, zerolog.InfoLevel, "json", "").With(String("component", "charts"))

	l.Info("ok")

	var out map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["component"] != "charts" {
		t.Fatalf("expected component field, got %v", out["component"])
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(&Config{Level: "loud", Output: "stdout"}); err == nil {
		t.Fatalf("expected error for bad level")
	}
}
