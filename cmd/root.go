package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/config"
	"github.com/abhisek/quizzy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "quizzy",
	Short:        "AI quiz generator for the terminal",
	Long:         "Quizzy asks an LLM for multiple-choice questions on any topic and quizzes you on them.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZZY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./quizzy.yaml or $XDG_CONFIG_HOME/quizzy/quizzy.yaml)")
	rootCmd.PersistentFlags().Bool("sample", false, "Use the built-in sample questions instead of an LLM")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	sample, _ := cmd.Flags().GetBool("sample")
	return config.Load(config.Options{ConfigFile: path, Sample: sample})
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db setting (QUIZZY_DB or the config file), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
