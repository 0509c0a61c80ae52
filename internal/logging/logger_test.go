package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewJSONLoggerAttachesService(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "photoredact", "debug")
	log.Debug("probe", "file", "a.jpg")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not one JSON line: %v", err)
	}
	if line["service"] != "photoredact" {
		t.Errorf("service = %v", line["service"])
	}
	if line["msg"] != "probe" {
		t.Errorf("msg = %v", line["msg"])
	}
	if line["file"] != "a.jpg" {
		t.Errorf("file = %v", line["file"])
	}
}

func TestNewJSONLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "photoredact", "error")
	log.Info("chatter")
	if buf.Len() != 0 {
		t.Errorf("info record passed an error-level logger: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		"warn":     slog.LevelWarn,
		"WARNING ": slog.LevelWarn,
		"error":    slog.LevelError,
		"info":     slog.LevelInfo,
		"":         slog.LevelInfo,
		"garbage":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
