package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/scoring"
	"github.com/abhisek/quizzy/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List finished quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		topic, _ := cmd.Flags().GetString("topic")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.EventRepo().QueryQuizResults(cmd.Context(), store.QueryOpts{Limit: limit, Topic: topic})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No quizzes played yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-28s  %-6s  %7s  %5s  %s\n",
			"ID", "Date", "Topic", "Level", "Score", "%", "Tier")
		fmt.Fprintln(out, strings.Repeat("─", 86))
		for _, r := range results {
			fmt.Fprintf(out, "%-5d  %-16s  %-28s  %-6s  %7s  %4d%%  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(r.Config.Topic, 28),
				r.Config.Difficulty,
				fmt.Sprintf("%d/%d", r.Results.Score, r.Results.TotalQuestions),
				r.Percentage,
				scoring.TierFor(r.Percentage),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
	historyCmd.Flags().StringP("topic", "t", "", "Only show quizzes on this topic")
}
