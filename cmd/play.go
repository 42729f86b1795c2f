package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/app"
	"github.com/abhisek/quizzy/internal/config"
	"github.com/abhisek/quizzy/internal/logger"
	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/screens/history"
	"github.com/abhisek/quizzy/internal/screens/home"
	"github.com/abhisek/quizzy/internal/screens/play"
	"github.com/abhisek/quizzy/internal/screens/welcome"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, builds the generator, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logger.DefaultPath()
	}
	log, err := logger.New(cfg.Env, logPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	events := st.EventRepo()
	homeOpts := home.Options{
		NewHistory: func() screen.Screen { return history.New(events) },
		Events:     events,
	}

	gen, err := cfg.NewGenerator(ctx, events, log)
	switch {
	case errors.Is(err, config.ErrNoProvider):
		homeOpts.Notice = "No LLM configured. Set GEMINI_API_KEY or run with --sample."
	case err != nil:
		return fmt.Errorf("build generator: %w", err)
	default:
		assistant := quizgen.NewAssistant(gen, log)
		deps := play.Deps{
			Assistant: assistant,
			Events:    events,
			Snapshots: st.SnapshotRepo(),
			Log:       log,
			Status:    cfg.GeneratorName(),
		}
		homeOpts.NewQuiz = func() screen.Screen {
			return play.New(deps, quiz.DefaultConfiguration())
		}
	}

	log.Info("starting tui", zap.String("generator", cfg.GeneratorName()))
	start := welcome.New(func() screen.Screen { return home.New(homeOpts) })
	return app.Run(start, cfg.GeneratorName())
}
