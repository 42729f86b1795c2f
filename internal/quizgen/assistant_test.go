package quizgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/quizzy/internal/quiz"
)

type stubGenerator struct {
	questions []quiz.Question
	err       error
}

func (s stubGenerator) Generate(context.Context, quiz.Configuration) ([]quiz.Question, error) {
	return s.questions, s.err
}

func TestAssistant_GenerateQuiz(t *testing.T) {
	tests := []struct {
		name     string
		gen      stubGenerator
		wantN    int
		wantMsg  string
		wantKind string
	}{
		{"success", stubGenerator{questions: SampleQuestions()}, 3, "", ""},
		{"nil without error", stubGenerator{}, 0, MsgNoQuestions, "empty"},
		{"empty kind", stubGenerator{err: &GenerationError{Kind: KindEmpty, Err: ErrNoQuestions}}, 0, MsgNoQuestions, "empty"},
		{"transport", stubGenerator{err: &GenerationError{Kind: KindTransport, Err: errors.New("dial tcp")}}, 0, MsgGenerationFailed, "transport"},
		{"malformed", stubGenerator{err: &GenerationError{Kind: KindMalformed, Err: errors.New("bad json")}}, 0, MsgGenerationFailed, "malformed"},
		{"untyped", stubGenerator{err: errors.New("surprise")}, 0, MsgGenerationFailed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			a := NewAssistant(tt.gen, zap.New(core))

			qs, msg := a.GenerateQuiz(context.Background(), geographyConfig(3))
			assert.Len(t, qs, tt.wantN)
			assert.Equal(t, tt.wantMsg, msg)

			if tt.wantKind != "" {
				entries := logs.FilterField(zap.String("kind", tt.wantKind)).All()
				assert.Len(t, entries, 1, "expected the failure kind to be logged")
			}
		})
	}
}
