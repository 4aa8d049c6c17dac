package applog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "arcade")
	logger.Info("run finished", "score", 1200)

	out := buf.String()
	for _, want := range []string{"arcade", "run finished", "score=1200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arcade.log")

	for i := 0; i < 2; i++ {
		logger, closer, err := OpenFile(path, "arcade")
		if err != nil {
			t.Fatalf("OpenFile: %v", err)
		}
		logger.Warn("high score save failed")
		closer.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "high score save failed"); n != 2 {
		t.Errorf("found %d lines, want 2", n)
	}
}

func TestOpenFileExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, closer, err := OpenFile("~/.arcade/arcade.log", "arcade")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	closer.Close()
	if _, err := os.Stat(filepath.Join(home, ".arcade", "arcade.log")); err != nil {
		t.Errorf("log file not created under HOME: %v", err)
	}
}
