package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const referenceEngineSource = `package main

var (
	rank      = -1
	localRank = -1
	size      = -1
	localSize = -1
)

func Init(r, lr, s, ls int) int {
	if s <= 0 {
		return 1
	}
	rank = r
	localRank = lr
	size = s
	localSize = ls
	return 0
}

func Shutdown() int {
	rank = -1
	localRank = -1
	size = -1
	localSize = -1
	return 0
}

func Size() int      { return size }
func LocalSize() int { return localSize }
func Rank() int      { return rank }
func LocalRank() int { return localRank }
`

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.go")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestLoadScriptDrivesLifecycle(t *testing.T) {
	script, err := LoadScript(writeScript(t, referenceEngineSource))
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	if got := script.Rank(); got != Uninitialized {
		t.Fatalf("rank before init = %d", got)
	}
	if status := script.Init(2, 1, 4, 2); status != 0 {
		t.Fatalf("init status = %d", status)
	}
	if script.Rank() != 2 || script.LocalRank() != 1 || script.Size() != 4 || script.LocalSize() != 2 {
		t.Fatalf("unexpected accessors after init")
	}
	if status := script.Init(0, 0, 0, 0); status != 1 {
		t.Fatalf("expected failing status, got %d", status)
	}
	if status := script.Shutdown(); status != 0 {
		t.Fatalf("shutdown status = %d", status)
	}
	if got := script.Size(); got != Uninitialized {
		t.Fatalf("size after shutdown = %d", got)
	}
}

func TestLoadScriptMissingFunc(t *testing.T) {
	if _, err := LoadScript(writeScript(t, "package main\n\nfunc Init(a, b, c, d int) int { return 0 }\n")); err == nil {
		t.Fatalf("expected error for missing engine functions")
	}
}

func TestLoadScriptWrongSignature(t *testing.T) {
	source := strings.Replace(referenceEngineSource, "func Size() int      { return size }", "func Size() string { return \"\" }", 1)
	if _, err := LoadScript(writeScript(t, source)); err == nil {
		t.Fatalf("expected error for Size returning string")
	}
}

func TestLoadScriptEmpty(t *testing.T) {
	if _, err := LoadScript(writeScript(t, "  \n")); err == nil {
		t.Fatalf("expected error for empty script")
	}
}

