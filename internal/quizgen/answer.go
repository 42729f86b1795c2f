package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizzy/internal/quiz"
)

// AnswerValidator checks that the correct answer is one of the options.
// A match that differs only in case or surrounding space is snapped to the
// option's exact text so later comparisons are exact.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q *quiz.Question, _ quiz.Configuration) *ValidationError {
	answer := strings.TrimSpace(q.CorrectAnswer)
	if answer == "" {
		return &ValidationError{Validator: v.Name(), Message: "correctAnswer is empty"}
	}

	for _, o := range q.Options {
		if o == answer {
			q.CorrectAnswer = o
			return nil
		}
	}
	for _, o := range q.Options {
		if strings.EqualFold(strings.TrimSpace(o), answer) {
			q.CorrectAnswer = o
			return nil
		}
	}
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("correctAnswer %q is not one of the options", q.CorrectAnswer),
	}
}
