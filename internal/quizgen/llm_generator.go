package quizgen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quiz"
)

// LLMGenerator implements Generator with a single structured-output request
// to an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// Generate requests cfg.NumQuestions questions and returns those that pass
// the validator chain.
func (g *LLMGenerator) Generate(ctx context.Context, cfg quiz.Configuration) ([]quiz.Question, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if llm.PurposeFrom(ctx) == "unknown" {
		ctx = llm.WithPurpose(ctx, llm.PurposeQuizGeneration)
	}

	req := llm.SingleTurn(systemPrompt, buildUserMessage(cfg), QuizSchema, g.config.MaxTokens(cfg.NumQuestions))
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		kind := KindTransport
		if llm.IsMalformed(err) {
			kind = KindMalformed
		}
		return nil, &GenerationError{Kind: kind, Err: fmt.Errorf("LLM generation failed: %w", err)}
	}

	var raw quizOutput
	if err := resp.Decode(&raw); err != nil {
		return nil, &GenerationError{Kind: KindMalformed, Err: fmt.Errorf("parse LLM response: %w", err)}
	}

	questions := filter(raw.Questions, cfg, g.config.Validators, g.log)
	if len(questions) == 0 {
		return nil, &GenerationError{Kind: KindEmpty, Err: ErrNoQuestions}
	}

	g.log.Info("quiz generated",
		zap.String("topic", cfg.Topic),
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int("requested", cfg.NumQuestions),
		zap.Int("received", len(raw.Questions)),
		zap.Int("kept", len(questions)),
	)
	return questions, nil
}
