package play

import (
	"time"

	"github.com/abhisek/quizzy/internal/quiz"
)

// generatedMsg carries the outcome of a generation request.
type generatedMsg struct {
	Questions []quiz.Question
	Err       string
}

// advanceMsg fires after the feedback delay for the question at Index of
// the session identified by SessionID. Stale ticks are ignored.
type advanceMsg struct {
	SessionID string
	Index     int
}

// prefillMsg carries the last submitted configuration from the snapshot.
type prefillMsg struct {
	Config *quiz.Configuration
}

// loadingTickMsg animates the loading indicator.
type loadingTickMsg time.Time

// persistedMsg reports the outcome of a background write.
type persistedMsg struct {
	What string
	Err  error
}
