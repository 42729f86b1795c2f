package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/config"
	"github.com/abhisek/quizzy/internal/flowserver"
	"github.com/abhisek/quizzy/internal/logger"
	"github.com/abhisek/quizzy/internal/quizgen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve quiz generation over HTTP at " + quizgen.FlowPath,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Serve.Addr = addr
		}

		log, err := logger.New(cfg.Env, cfg.LogFile)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gen, err := cfg.NewGenerator(ctx, st.EventRepo(), log)
		if errors.Is(err, config.ErrNoProvider) {
			return fmt.Errorf("%w; serve needs a generator", err)
		}
		if err != nil {
			return fmt.Errorf("build generator: %w", err)
		}

		log.Info("serving quiz generation",
			zap.String("generator", cfg.GeneratorName()),
			zap.String("addr", cfg.Serve.Addr),
		)
		return flowserver.New(gen, log).ListenAndServe(ctx, cfg.Serve.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from serve.addr, :3400)")
}
