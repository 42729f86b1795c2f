// Package quizgen produces multiple-choice questions for a quiz
// configuration and collapses generation failures into user-facing
// messages.
package quizgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizzy/internal/quiz"
)

// Generator produces the questions for one quiz.
type Generator interface {
	// Generate returns the validated questions for cfg. Individual invalid
	// questions are dropped; a batch with none left is a KindEmpty error.
	Generate(ctx context.Context, cfg quiz.Configuration) ([]quiz.Question, error)
}

// Kind classifies a generation failure for diagnostics.
type Kind string

const (
	KindTransport Kind = "transport" // the service could not be reached or refused
	KindMalformed Kind = "malformed" // a reply arrived but could not be used
	KindEmpty     Kind = "empty"     // a usable reply held no valid questions
)

// ErrNoQuestions is wrapped by KindEmpty errors.
var ErrNoQuestions = errors.New("no questions generated")

// GenerationError is returned by generators when a quiz could not be
// produced for a valid configuration.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// KindOf returns the kind of a generation error, or "" for other errors.
func KindOf(err error) Kind {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ""
}
