package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/store"
)

type fakeEvents struct {
	store.EventRepo
	results []store.QuizResultEvent
	err     error
	opts    store.QueryOpts
}

func (f *fakeEvents) QueryQuizResults(_ context.Context, opts store.QueryOpts) ([]store.QuizResultEvent, error) {
	f.opts = opts
	return f.results, f.err
}

func strPtr(s string) *string { return &s }

func sampleResult() store.QuizResultEvent {
	return store.QuizResultEvent{
		ID:        1,
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		QuizResultEventData: store.QuizResultEventData{
			SessionID: "s1",
			Config:    quiz.Configuration{Topic: "Geography", Difficulty: quiz.DifficultyEasy, NumQuestions: 2},
			Results: quiz.Results{
				Score:          1,
				TotalQuestions: 2,
				Details: []quiz.ResultDetail{
					{Question: "Capital of France?", ProvidedAnswer: strPtr("Paris"), CorrectAnswer: "Paris"},
					{Question: "Longest river?", ProvidedAnswer: strPtr("Amazon"), CorrectAnswer: "Nile"},
				},
			},
			Percentage: 50,
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
}

func TestHistoryListsResults(t *testing.T) {
	events := &fakeEvents{results: []store.QuizResultEvent{sampleResult()}}
	s := New(events)
	load(t, s)

	if events.opts.Limit != pageSize {
		t.Errorf("limit = %d, want %d", events.opts.Limit, pageSize)
	}
	view := s.View(100, 30)
	for _, want := range []string{"Geography", "1/2", "50%", "good"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Longest river?") {
		t.Error("details should be collapsed initially")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	if !strings.Contains(view, "Longest river?") || !strings.Contains(view, "answer: Nile") {
		t.Errorf("expanded view missing answers:\n%s", view)
	}
}

func TestHistoryEmptyAndError(t *testing.T) {
	s := New(&fakeEvents{})
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading text before results arrive")
	}
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No quizzes yet") {
		t.Error("expected empty state")
	}

	s = New(&fakeEvents{err: errors.New("disk full")})
	load(t, s)
	if !strings.Contains(s.View(80, 24), "disk full") {
		t.Error("expected error text")
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := New(&fakeEvents{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a pop command on Esc")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Geography", 5); got != "Geog…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Go", 5); got != "Go" {
		t.Errorf("truncate short = %q", got)
	}
}
