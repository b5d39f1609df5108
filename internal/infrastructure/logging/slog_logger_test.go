package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSlogLogger_Level(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{level: "debug", debugSeen: true, infoSeen: true},
		{level: "info", debugSeen: false, infoSeen: true},
		{level: "error", debugSeen: false, infoSeen: false},
		{level: "desconhecido", debugSeen: false, infoSeen: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewSlogLoggerWithWriter(tt.level, &buf)

			logger.Debug("debug message")
			logger.Info("info message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.debugSeen {
				t.Errorf("debug visível = %v, esperava %v", got, tt.debugSeen)
			}
			if got := strings.Contains(out, "info message"); got != tt.infoSeen {
				t.Errorf("info visível = %v, esperava %v", got, tt.infoSeen)
			}
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLoggerWithWriter("info", &buf).With("component", "audit")

	logger.Warn("audit write failed", "action", "user_created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("saída não é JSON: %v", err)
	}
	if entry["component"] != "audit" {
		t.Errorf("esperava component=audit, obteve %v", entry["component"])
	}
	if entry["action"] != "user_created" {
		t.Errorf("esperava action=user_created, obteve %v", entry["action"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("esperava level=WARN, obteve %v", entry["level"])
	}
}

func TestSlogLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newSlogLogger("debug", "text", &buf)

	logger.Debug("slug allocated", "slug", "hello-world")

	out := buf.String()
	for _, want := range []string{"level=DEBUG", `msg="slug allocated"`, "slug=hello-world", "service=backoffice"} {
		if !strings.Contains(out, want) {
			t.Errorf("saída %q não contém %q", out, want)
		}
	}
}
