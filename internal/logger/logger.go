// Package logger builds the zap loggers used across quizzy.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger when env is "production" and a
// development console logger otherwise. A non-empty path sends output to
// that file instead of stderr, which interactive commands need because the
// TUI owns the terminal.
func New(env, path string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		// Nobody reads stack traces in a log file for a TUI.
		cfg.DisableStacktrace = true
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// DefaultPath returns the log file for interactive commands:
// $XDG_STATE_HOME/quizzy/quizzy.log, or ~/.local/state/quizzy/quizzy.log.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "quizzy", "quizzy.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "quizzy.log")
	}
	return filepath.Join(home, ".local", "state", "quizzy", "quizzy.log")
}
