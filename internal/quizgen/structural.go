package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizzy/internal/quiz"
)

// Length limits for generated text.
const (
	maxQuestionLen = 500
	maxOptionLen   = 200
	maxHintLen     = 300
)

// StructuralValidator checks that text fields are present and within limits
// and that there are exactly four distinct, non-empty options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question, _ quiz.Configuration) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}

	q.Question = strings.TrimSpace(q.Question)
	q.Hint = strings.TrimSpace(q.Hint)

	if q.Question == "" {
		return fail("question is empty")
	}
	if len(q.Question) > maxQuestionLen {
		return fail("question exceeds %d characters", maxQuestionLen)
	}
	if len(q.Hint) > maxHintLen {
		return fail("hint exceeds %d characters", maxHintLen)
	}
	if len(q.Options) != quiz.OptionsPerQuestion {
		return fail("expected %d options, got %d", quiz.OptionsPerQuestion, len(q.Options))
	}

	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			return fail("option %d is empty", i+1)
		}
		if len(o) > maxOptionLen {
			return fail("option %d exceeds %d characters", i+1, maxOptionLen)
		}
		key := strings.ToLower(o)
		if seen[key] {
			return fail("duplicate option %q", o)
		}
		seen[key] = true
		q.Options[i] = o
	}
	return nil
}
