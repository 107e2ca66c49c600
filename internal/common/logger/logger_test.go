package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/AlibekovAA/onion-recipes/internal/common/constants"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "onion", "warn")

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARNING] [onion]") || !strings.Contains(out, "shown") {
		t.Errorf("expected warning with service prefix, got %q", out)
	}
}

func TestLogger_WithFieldsSortedAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "abc123")
	log.WithFields(ctx, Fields{"user_id": "u1", "action": "get_recipes"}).Info("done")

	out := buf.String()
	if !strings.Contains(out, "[trace_id=abc123 action=get_recipes user_id=u1]") {
		t.Errorf("unexpected field rendering: %q", out)
	}
}

func TestLogger_ShouldLog(t *testing.T) {
	log := NewWithWriter(&bytes.Buffer{}, "", "error")
	if log.ShouldLog(WARNING) {
		t.Error("warning should not be logged at error level")
	}
	if !log.ShouldLog(CRITICAL) {
		t.Error("critical should be logged at error level")
	}

	log.SetLevel("debug")
	if !log.ShouldLog(DEBUG) {
		t.Error("debug should be logged after SetLevel(debug)")
	}
}

func TestParseLevel_UnknownFallsBackToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != INFO {
		t.Errorf("expected INFO, got %v", got)
	}
}
