package quizgen

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/quiz"
)

// User-facing generation failure messages.
const (
	MsgNoQuestions      = "No questions were generated."
	MsgGenerationFailed = "Failed to generate quiz. Please try again in a moment."
)

// Assistant is the generation boundary used by the quiz flow. It never
// surfaces error values: failures become one of two messages and the cause
// is logged.
type Assistant struct {
	gen Generator
	log *zap.Logger
}

// NewAssistant wraps gen.
func NewAssistant(gen Generator, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{gen: gen, log: log}
}

// GenerateQuiz returns the questions for cfg, or nil and a non-empty
// message when none could be produced.
func (a *Assistant) GenerateQuiz(ctx context.Context, cfg quiz.Configuration) ([]quiz.Question, string) {
	questions, err := a.gen.Generate(ctx, cfg)
	if err == nil && len(questions) > 0 {
		return questions, ""
	}

	kind := KindOf(err)
	if err == nil || kind == KindEmpty {
		a.log.Warn("quiz generation returned no questions",
			zap.String("topic", cfg.Topic),
			zap.String("kind", string(KindEmpty)),
		)
		return nil, MsgNoQuestions
	}

	fields := []zap.Field{
		zap.String("topic", cfg.Topic),
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int("num_questions", cfg.NumQuestions),
		zap.Error(err),
	}
	if kind != "" {
		fields = append(fields, zap.String("kind", string(kind)))
	} else if errors.Is(err, quiz.ErrInvalidConfiguration) {
		fields = append(fields, zap.String("kind", "invalid-configuration"))
	}
	a.log.Error("quiz generation failed", fields...)
	return nil, MsgGenerationFailed
}
