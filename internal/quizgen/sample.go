package quizgen

import (
	"context"
	"time"

	"github.com/abhisek/quizzy/internal/quiz"
)

// sampleQuestions is the built-in offline question set.
var sampleQuestions = []quiz.Question{
	{
		Question:      "What is the capital of France?",
		Options:       []string{"Berlin", "Madrid", "Paris", "Rome"},
		CorrectAnswer: "Paris",
		Hint:          "It is also called the City of Light.",
	},
	{
		Question:      "Which planet is known as the Red Planet?",
		Options:       []string{"Earth", "Mars", "Jupiter", "Venus"},
		CorrectAnswer: "Mars",
		Hint:          "Named after the Roman god of war.",
	},
	{
		Question:      "What is 7 × 8?",
		Options:       []string{"54", "56", "58", "64"},
		CorrectAnswer: "56",
		Hint:          "It’s less than 60.",
	},
}

// SampleQuestions returns a copy of the built-in question set.
func SampleQuestions() []quiz.Question {
	out := make([]quiz.Question, len(sampleQuestions))
	for i, q := range sampleQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

// SampleGenerator implements Generator with the built-in question set,
// whatever the configuration asks for. It needs no network access.
type SampleGenerator struct {
	// Delay simulates generation latency.
	Delay time.Duration
}

func (g *SampleGenerator) Generate(ctx context.Context, cfg quiz.Configuration) ([]quiz.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &GenerationError{Kind: KindTransport, Err: ctx.Err()}
		case <-time.After(g.Delay):
		}
	}
	return SampleQuestions(), nil
}
