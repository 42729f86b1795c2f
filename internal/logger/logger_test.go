package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "quizzy.log")

			log, err := New(env, path)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			log.Info("hello from test")
			_ = log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			if !strings.Contains(string(data), "hello from test") {
				t.Errorf("log file missing message: %q", data)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	if got, want := DefaultPath(), filepath.Join("/state", "quizzy", "quizzy.log"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
