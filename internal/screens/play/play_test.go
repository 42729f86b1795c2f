package play

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/orchestrator"
	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/store"
)

type fakeAssistant struct {
	questions []quiz.Question
	msg       string
	got       []quiz.Configuration
}

func (f *fakeAssistant) GenerateQuiz(_ context.Context, cfg quiz.Configuration) ([]quiz.Question, string) {
	f.got = append(f.got, cfg)
	return f.questions, f.msg
}

// fakeEvents records quiz results; other methods are unused here.
type fakeEvents struct {
	store.EventRepo
	results []store.QuizResultEventData
}

func (f *fakeEvents) AppendQuizResult(_ context.Context, data store.QuizResultEventData) error {
	f.results = append(f.results, data)
	return nil
}

type fakeSnapshots struct {
	saved []*store.Snapshot
}

func (f *fakeSnapshots) Save(_ context.Context, snap *store.Snapshot) error {
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeSnapshots) Latest(context.Context) (*store.Snapshot, error) {
	if len(f.saved) == 0 {
		return nil, nil
	}
	return f.saved[len(f.saved)-1], nil
}

func (f *fakeSnapshots) Prune(context.Context, int) error { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// drain runs cmd and any batched commands and returns the screen's own
// messages. Timers and cursor blinks are dropped so feed terminates.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	switch msg.(type) {
	case generatedMsg, advanceMsg, prefillMsg, persistedMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func geography() []quiz.Question {
	return []quiz.Question{
		{Question: "Capital of France?", Options: []string{"Berlin", "Madrid", "Paris", "Rome"}, CorrectAnswer: "Paris", Hint: "City of light"},
		{Question: "Longest river?", Options: []string{"Nile", "Amazon", "Yangtze", "Danube"}, CorrectAnswer: "Nile"},
		{Question: "Largest ocean?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectAnswer: "Pacific"},
	}
}

var geographyConfig = quiz.Configuration{Topic: "Geography", Difficulty: quiz.DifficultyEasy, NumQuestions: 3}

func testScreen(t *testing.T, gen *fakeAssistant) (*PlayScreen, *fakeEvents, *fakeSnapshots) {
	t.Helper()
	events := &fakeEvents{}
	snaps := &fakeSnapshots{}
	s := New(Deps{Assistant: gen, Events: events, Snapshots: snaps, Status: "sample"}, geographyConfig)
	return s, events, snaps
}

// feed sends msgs to s and then everything their commands produce.
func feed(s *PlayScreen, msgs ...tea.Msg) {
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		_, cmd := s.Update(msg)
		msgs = append(msgs, drain(cmd)...)
	}
}

func answer(t *testing.T, s *PlayScreen, key rune) {
	t.Helper()
	index := s.sess.Index()
	_, cmd := s.Update(keyPress(key))
	s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatalf("selecting an option should not schedule anything")
	}
	if !s.sess.Answered() {
		t.Fatalf("question %d not submitted", index)
	}
	feed(s, advanceMsg{SessionID: s.sess.ID(), Index: index})
}

func TestGeographyRound(t *testing.T) {
	gen := &fakeAssistant{questions: geography()}
	s, events, snaps := testScreen(t, gen)

	feed(s, specialKey(tea.KeyEnter))
	if s.Phase() != orchestrator.PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.Phase())
	}
	if len(gen.got) != 1 || gen.got[0] != geographyConfig {
		t.Fatalf("assistant got %+v", gen.got)
	}
	if len(snaps.saved) != 1 || *snaps.saved[0].Data.LastConfiguration != geographyConfig {
		t.Errorf("expected configuration snapshot, got %+v", snaps.saved)
	}

	answer(t, s, '3') // Paris
	answer(t, s, '2') // Amazon
	answer(t, s, '4') // Pacific

	if s.Phase() != orchestrator.PhaseResults {
		t.Fatalf("phase = %v, want results", s.Phase())
	}
	if s.summary == nil || s.summary.Percentage != 67 {
		t.Fatalf("summary = %+v, want 67%%", s.summary)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Good job! A solid performance.") {
		t.Errorf("results view missing tier message:\n%s", view)
	}
	if len(events.results) != 1 {
		t.Fatalf("expected 1 persisted result, got %d", len(events.results))
	}
	if got := events.results[0]; got.Results.Score != 2 || got.Percentage != 67 || got.Config.Topic != "Geography" {
		t.Errorf("persisted result = %+v", got)
	}

	_, cmd := s.Update(keyPress('m'))
	if cmd == nil {
		t.Fatal("expected menu command on results")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("m should return to the menu")
	}

	feed(s, specialKey(tea.KeyEnter))
	if s.Phase() != orchestrator.PhaseConfig {
		t.Fatalf("after play again phase = %v, want config", s.Phase())
	}
	if s.sess != nil || s.summary != nil {
		t.Error("play again should clear the session and summary")
	}
	if got := s.form.Configuration(); got != geographyConfig {
		t.Errorf("form not prefilled with last config: %+v", got)
	}
}

func TestStaleAdvanceIgnored(t *testing.T) {
	s, _, _ := testScreen(t, &fakeAssistant{questions: geography()})
	feed(s, specialKey(tea.KeyEnter))

	s.Update(keyPress('1'))
	s.Update(specialKey(tea.KeyEnter))
	feed(s, advanceMsg{SessionID: s.sess.ID(), Index: 5})
	feed(s, advanceMsg{SessionID: "other", Index: 0})
	if s.sess.Index() != 0 || !s.sess.Answered() {
		t.Fatalf("stale tick moved the quiz: index %d", s.sess.Index())
	}
}

func TestSelectionLockedAfterSubmit(t *testing.T) {
	s, _, _ := testScreen(t, &fakeAssistant{questions: geography()})
	feed(s, specialKey(tea.KeyEnter))

	s.Update(keyPress('1'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('3'))
	if got := s.sess.Selected(); got != "Berlin" {
		t.Errorf("selection changed after submit: %q", got)
	}
}

func TestHintToggle(t *testing.T) {
	s, _, _ := testScreen(t, &fakeAssistant{questions: geography()})
	feed(s, specialKey(tea.KeyEnter))

	s.Update(keyPress('h'))
	if !strings.Contains(s.View(100, 40), "City of light") {
		t.Error("hint not shown after pressing h")
	}
}

func TestHintToggleAfterSubmit(t *testing.T) {
	s, _, _ := testScreen(t, &fakeAssistant{questions: geography()})
	feed(s, specialKey(tea.KeyEnter))

	s.Update(keyPress('1'))
	s.Update(specialKey(tea.KeyEnter))
	if !s.sess.Answered() {
		t.Fatal("question not submitted")
	}
	s.Update(keyPress('h'))
	if !s.sess.HintVisible() {
		t.Fatal("hint not toggled during feedback")
	}
	if !strings.Contains(s.View(100, 40), "City of light") {
		t.Error("hint not rendered during feedback")
	}
	if got := s.sess.Selected(); got != "Berlin" {
		t.Errorf("selection changed: %q", got)
	}
}

func TestBackBlockedWhileLoading(t *testing.T) {
	s, _, _ := testScreen(t, &fakeAssistant{questions: geography()})
	if s.BlocksBack() {
		t.Fatal("form should allow leaving")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if s.Phase() != orchestrator.PhaseLoading || !s.BlocksBack() {
		t.Fatalf("phase = %v, blocks back = %v", s.Phase(), s.BlocksBack())
	}

	feed(s, drain(cmd)...)
	if s.Phase() != orchestrator.PhasePlaying || s.BlocksBack() {
		t.Errorf("phase = %v, blocks back = %v", s.Phase(), s.BlocksBack())
	}
}

func TestEmptyGenerationShowsError(t *testing.T) {
	s, _, _ := testScreen(t, &fakeAssistant{msg: quizgen.MsgNoQuestions})

	feed(s, specialKey(tea.KeyEnter))
	if s.Phase() != orchestrator.PhaseConfig {
		t.Fatalf("phase = %v, want config", s.Phase())
	}
	if !strings.Contains(s.View(100, 40), quizgen.MsgNoQuestions) {
		t.Error("error message not rendered on the form")
	}
}

func TestInvalidFormStaysInConfig(t *testing.T) {
	gen := &fakeAssistant{questions: geography()}
	s := New(Deps{Assistant: gen}, quiz.DefaultConfiguration())

	feed(s, specialKey(tea.KeyEnter))
	if s.Phase() != orchestrator.PhaseConfig {
		t.Fatalf("phase = %v, want config", s.Phase())
	}
	if len(gen.got) != 0 {
		t.Error("assistant called with an invalid configuration")
	}
	if !strings.Contains(s.View(100, 40), "Topic is required.") {
		t.Error("topic error not shown")
	}
}

func TestFormControls(t *testing.T) {
	s := New(Deps{Assistant: &fakeAssistant{}}, quiz.DefaultConfiguration())

	for _, r := range "Go" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyRight))
	s.Update(specialKey(tea.KeyTab))
	for i := 0; i < 30; i++ {
		s.Update(specialKey(tea.KeyRight))
	}

	got := s.form.Configuration()
	want := quiz.Configuration{Topic: "Go", Difficulty: quiz.DifficultyMedium, NumQuestions: quiz.MaxQuestions}
	if got != want {
		t.Errorf("form = %+v, want %+v", got, want)
	}

	for i := 0; i < 30; i++ {
		s.Update(specialKey(tea.KeyLeft))
	}
	if s.form.count != quiz.MinQuestions {
		t.Errorf("count = %d, want clamped to %d", s.form.count, quiz.MinQuestions)
	}
}

func TestPrefillFromSnapshot(t *testing.T) {
	snaps := &fakeSnapshots{}
	last := quiz.Configuration{Topic: "Jazz", Difficulty: quiz.DifficultyHard, NumQuestions: 8}
	snaps.Save(context.Background(), &store.Snapshot{Data: store.SnapshotData{LastConfiguration: &last}})

	s := New(Deps{Assistant: &fakeAssistant{}, Snapshots: snaps}, quiz.DefaultConfiguration())
	feed(s, s.loadLastConfiguration()())

	if got := s.form.Configuration(); got != last {
		t.Errorf("form = %+v, want %+v", got, last)
	}
}
