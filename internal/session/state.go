package session

import (
	"time"
)

// AutoAdvanceDelay is how long feedback stays visible after an answer is
// submitted before the next question is shown.
const AutoAdvanceDelay = 2 * time.Second

// Feedback is the verdict shown for the current question.
type Feedback string

const (
	FeedbackNone      Feedback = ""
	FeedbackCorrect   Feedback = "correct"
	FeedbackIncorrect Feedback = "incorrect"
)

// QuestionState is the per-question sub-state.
type QuestionState int

const (
	StateUnanswered QuestionState = iota // Accepting selections
	StateSubmitted                       // Answer locked, feedback showing
)

func (s QuestionState) String() string {
	if s == StateSubmitted {
		return "submitted"
	}
	return "unanswered"
}

// Outcome describes the result of a submission.
type Outcome struct {
	// Correct is true when the selected option matched the answer.
	Correct bool

	// Last is true when the submitted question was the final one.
	Last bool

	// AdvanceAfter is how long the caller should wait before calling Advance.
	AdvanceAfter time.Duration
}
