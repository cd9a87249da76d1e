package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "petdesk.log")
	l, err := NewLogger("info", path)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	l.Debug("hidden debug line")
	l.With(zap.String("component", "test")).Info("loaded pets", zap.Int("count", 5))
	l.Warn("backend down", zap.Error(errors.New("refused")))
	_ = l.Sync()

	if l.Path() != path {
		t.Fatalf("Path = %q, want %q", l.Path(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	for _, want := range []string{"INFO", "loaded pets", `"count": 5`, "component", "WARN", "refused"} {
		if !strings.Contains(text, want) {
			t.Fatalf("log output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "hidden debug line") {
		t.Fatalf("debug line written at info level:\n%s", text)
	}
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger("loud", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Fatalf("NewLogger returned nil error for unknown level")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.Warn("ignored")
	if l.With(zap.String("k", "v")) != nil {
		t.Fatalf("With on nil logger should stay nil")
	}
	if err := l.Sync(); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	Nop().Error("ignored")
}
