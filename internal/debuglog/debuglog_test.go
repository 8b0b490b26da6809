// ABOUTME: Tests for the file debug logger
// ABOUTME: Covers enable/disable, formatting, and the error helper

package debuglog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("reading debug log: %v", err)
	}
	return string(data)
}

func TestLogWritesToFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer Close()

	Log("loaded %d courses", 3)
	Error("api", errors.New("connection refused"))

	got := readLog(t, dir)
	if !strings.Contains(got, "loaded 3 courses") {
		t.Errorf("expected log line, got %q", got)
	}
	if !strings.Contains(got, "ERROR [api]: connection refused") {
		t.Errorf("expected error line, got %q", got)
	}
}

func TestLogDisabledWithoutInit(t *testing.T) {
	dir := t.TempDir()
	if err := Init(""); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer Close()

	Log("dropped")
	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Error("disabled logger must not create a file")
	}
}

func TestErrorIgnoresNil(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer Close()

	Error("api", nil)

	if got := readLog(t, dir); strings.Contains(got, "ERROR") {
		t.Errorf("nil error must not log, got %q", got)
	}
}
