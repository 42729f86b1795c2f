package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/logger"
	"github.com/abhisek/quizzy/internal/orchestrator"
	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/scoring"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/store"
)

var errInputClosed = errors.New("input closed")

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run a quiz in line mode, without the full-screen UI",
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringP("topic", "t", "", "Quiz topic (required)")
	askCmd.Flags().StringP("difficulty", "d", string(quiz.DifficultyEasy), "Difficulty: easy, medium or hard")
	askCmd.Flags().IntP("count", "n", quiz.DefaultQuestions, "Number of questions (1-20)")
	askCmd.Flags().Bool("no-save", false, "Do not record the result in history")
	_ = askCmd.MarkFlagRequired("topic")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	topic, _ := cmd.Flags().GetString("topic")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	noSave, _ := cmd.Flags().GetBool("no-save")

	diff, err := quiz.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	qc := quiz.Configuration{Topic: topic, Difficulty: diff, NumQuestions: count}.Normalized()
	if err := qc.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// stderr is free in line mode.
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

	gen, err := cfg.NewGenerator(ctx, st.EventRepo(), log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Topic: %s (%s)\n", qc.Topic, qc.Difficulty)
	fmt.Fprintf(out, "Generating %d questions...\n\n", qc.NumQuestions)

	sess, summary, err := askQuiz(ctx, quizgen.NewAssistant(gen, log), qc, cmd.InOrStdin(), out)
	if err != nil {
		return err
	}

	if noSave {
		return nil
	}
	if err := st.EventRepo().AppendQuizResult(ctx, store.QuizResultEventData{
		SessionID:  sess.ID(),
		Config:     qc,
		Results:    quiz.Results{Score: summary.Score, TotalQuestions: summary.Total, Details: summary.Details},
		Percentage: summary.Percentage,
	}); err != nil {
		log.Warn("failed to record quiz result", zap.Error(err))
	}
	return nil
}

// askQuiz drives one quiz over a line-oriented reader and writer.
func askQuiz(ctx context.Context, gen orchestrator.QuizGenerator, qc quiz.Configuration, in io.Reader, out io.Writer) (*session.Session, scoring.Summary, error) {
	questions, msg := gen.GenerateQuiz(ctx, qc)
	if len(questions) == 0 {
		return nil, scoring.Summary{}, errors.New(msg)
	}

	sess, err := session.New(questions)
	if err != nil {
		return nil, scoring.Summary{}, err
	}

	scanner := bufio.NewScanner(in)
	for {
		q := sess.Current()
		fmt.Fprintf(out, "── Question %d/%d ──\n", sess.Index()+1, sess.Total())
		fmt.Fprintln(out, q.Question)
		for i, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}

		if err := readAnswer(scanner, sess, out); err != nil {
			return sess, scoring.Summary{}, err
		}

		outcome, _ := sess.Submit()
		if outcome.Correct {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Incorrect. Answer: %s\n", q.CorrectAnswer)
		}
		fmt.Fprintln(out)

		results, _ := sess.Advance()
		if results != nil {
			summary := scoring.Summarize(*results)
			fmt.Fprintf(out, "── Score: %d/%d (%d%%) ──\n", summary.Score, summary.Total, summary.Percentage)
			fmt.Fprintln(out, summary.Message)
			return sess, summary, nil
		}
	}
}

// readAnswer prompts until a valid option is selected. "h" prints the hint.
func readAnswer(scanner *bufio.Scanner, sess *session.Session, out io.Writer) error {
	for {
		fmt.Fprint(out, "\nYour answer (1-4, h for hint): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return err
			}
			return errInputClosed
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch {
		case answer == "h":
			fmt.Fprintf(out, "Hint: %s\n", sess.Current().Hint)
		case len(answer) == 1 && answer[0] >= '1' && answer[0] <= '4':
			if sess.SelectIndex(int(answer[0] - '1')) {
				return nil
			}
		case len(answer) == 1 && answer[0] >= 'a' && answer[0] <= 'd':
			if sess.SelectIndex(int(answer[0] - 'a')) {
				return nil
			}
		default:
			fmt.Fprintln(out, "Please enter a number from 1 to 4.")
		}
	}
}
