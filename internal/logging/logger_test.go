package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != zapcore.InfoLevel {
		t.Fatalf("empty level = %v, %v", lvl, err)
	}
	lvl, err = ParseLevel("DEBUG")
	if err != nil || lvl != zapcore.DebugLevel {
		t.Fatalf("debug level = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New("info", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	for _, format := range []string{"", "json", "console"} {
		logger, err := New("warn", format)
		if err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("format %q: info must be disabled at warn level", format)
		}
	}
}

func TestNewFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.log")
	logger, err := NewFile("info", path)
	if err != nil {
		t.Fatalf("new file logger: %v", err)
	}
	logger.Info("dashboard refreshed")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"dashboard refreshed"`) {
		t.Fatalf("unexpected log content: %s", raw)
	}
}
