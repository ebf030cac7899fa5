package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerAppendsLevelledLines(t *testing.T) {
	projectDir := t.TempDir()
	logger, err := New(projectDir)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("session %s opened", "abc")
	logger.Warn("slow shutdown\n")
	logger.Error("init failed: %d", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	logger.Printf("dropped after close")

	data, err := os.ReadFile(filepath.Join(projectDir, ".commbind", "logs", "commbind.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	for idx, want := range []string{"INFO  session abc opened", "WARN  slow shutdown", "ERROR init failed: 3"} {
		if !strings.HasSuffix(lines[idx], want) {
			t.Fatalf("line %d = %q, want suffix %q", idx, lines[idx], want)
		}
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	var logger *Logger
	logger.Info("nothing")
	if err := logger.Close(); err != nil {
		t.Fatalf("close nil logger: %v", err)
	}
}
