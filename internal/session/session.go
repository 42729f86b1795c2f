// Package session holds the state machine for answering a generated quiz
// one question at a time.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/quizzy/internal/quiz"
)

// ErrNoQuestions is returned by New when the question list is empty.
var ErrNoQuestions = errors.New("session requires at least one question")

// Session tracks progress through a fixed list of questions. It is owned by
// a single goroutine and does no locking.
type Session struct {
	id        string
	questions []quiz.Question

	index    int
	score    int
	selected string
	state    QuestionState
	feedback Feedback
	hint     bool

	details []quiz.ResultDetail
	results *quiz.Results
}

// New starts a session over questions. The slice is copied.
func New(questions []quiz.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]quiz.Question, len(questions))
	copy(qs, questions)
	return &Session{
		id:        uuid.New().String(),
		questions: qs,
		details:   make([]quiz.ResultDetail, 0, len(qs)),
	}, nil
}

// ID returns the unique identifier of this session.
func (s *Session) ID() string { return s.id }

// Current returns the question being answered.
func (s *Session) Current() quiz.Question { return s.questions[s.index] }

// Index returns the zero-based index of the current question.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the session.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the number of correct answers so far.
func (s *Session) Score() int { return s.score }

// Selected returns the currently selected option, or "" if none.
func (s *Session) Selected() string { return s.selected }

// Answered reports whether the current question has been submitted.
func (s *Session) Answered() bool { return s.state == StateSubmitted }

// State returns the current question's sub-state.
func (s *Session) State() QuestionState { return s.state }

// Feedback returns the verdict for the current question.
func (s *Session) Feedback() Feedback { return s.feedback }

// HintVisible reports whether the hint is shown for the current question.
func (s *Session) HintVisible() bool { return s.hint }

// Finished reports whether the final question has been advanced past.
func (s *Session) Finished() bool { return s.results != nil }

// Progress returns the position of the current question as a percentage
// of the total, counting the current question as reached.
func (s *Session) Progress() float64 {
	return float64(s.index+1) / float64(len(s.questions)) * 100
}

// Details returns a copy of the recorded answers.
func (s *Session) Details() []quiz.ResultDetail {
	out := make([]quiz.ResultDetail, len(s.details))
	copy(out, s.details)
	return out
}

// Select marks option as the chosen answer. It returns false and does
// nothing once the question is submitted or when option is not one of the
// current question's options.
func (s *Session) Select(option string) bool {
	if s.state != StateUnanswered || s.results != nil {
		return false
	}
	for _, o := range s.Current().Options {
		if o == option {
			s.selected = option
			return true
		}
	}
	return false
}

// SelectIndex selects the option at the zero-based index i.
func (s *Session) SelectIndex(i int) bool {
	opts := s.Current().Options
	if i < 0 || i >= len(opts) {
		return false
	}
	return s.Select(opts[i])
}

// ToggleHint flips hint visibility for the current question.
func (s *Session) ToggleHint() {
	if s.results != nil {
		return
	}
	s.hint = !s.hint
}

// Submit locks in the selected answer. It returns false when nothing is
// selected or the question was already submitted.
func (s *Session) Submit() (Outcome, bool) {
	if s.state != StateUnanswered || s.selected == "" || s.results != nil {
		return Outcome{}, false
	}

	q := s.Current()
	answer := s.selected
	correct := answer == q.CorrectAnswer

	s.state = StateSubmitted
	if correct {
		s.score++
		s.feedback = FeedbackCorrect
	} else {
		s.feedback = FeedbackIncorrect
	}
	s.details = append(s.details, quiz.ResultDetail{
		Question:       q.Question,
		ProvidedAnswer: &answer,
		CorrectAnswer:  q.CorrectAnswer,
	})

	return Outcome{
		Correct:      correct,
		Last:         s.index == len(s.questions)-1,
		AdvanceAfter: AutoAdvanceDelay,
	}, true
}

// Advance moves past a submitted question. On the last question it
// finishes the session and returns the final results; later calls return
// the same results. It returns false when the current question has not been
// submitted yet.
func (s *Session) Advance() (*quiz.Results, bool) {
	if s.results != nil {
		return s.results, true
	}
	if s.state != StateSubmitted {
		return nil, false
	}

	if s.index < len(s.questions)-1 {
		s.index++
		s.reset()
		return nil, true
	}

	s.results = &quiz.Results{
		Score:          s.score,
		TotalQuestions: len(s.questions),
		Details:        s.Details(),
	}
	return s.results, true
}

func (s *Session) reset() {
	s.selected = ""
	s.state = StateUnanswered
	s.feedback = FeedbackNone
	s.hint = false
}
