package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPrintfAppendsTimestampedLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := New(dir)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.now = func() time.Time { return time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC) }
	logger.Printf("lead captured: %s\n", "buyer")
	logger.Printf("second")
	if err := logger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := "[2026-10-19T09:30:00Z] lead captured: buyer\n[2026-10-19T09:30:00Z] second\n"
	if string(data) != want {
		t.Fatalf("log contents = %q, want %q", data, want)
	}
}

func TestReopenAppends(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		logger, err := New(dir)
		if err != nil {
			t.Fatalf("new logger: %v", err)
		}
		logger.Printf("run %d", i)
		_ = logger.Close()
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Printf("ignored")
	if logger.Path() != "" {
		t.Fatalf("nil logger should have no path")
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
