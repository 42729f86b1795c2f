// Package play is the quiz screen: it collects a configuration, waits for
// questions, runs the quiz and shows the results, all on one page driven
// by the orchestrator.
package play

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/orchestrator"
	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/router"
	"github.com/abhisek/quizzy/internal/scoring"
	"github.com/abhisek/quizzy/internal/screen"
	"github.com/abhisek/quizzy/internal/session"
	"github.com/abhisek/quizzy/internal/store"
	"github.com/abhisek/quizzy/internal/ui/layout"
)

const (
	loadingTick   = 150 * time.Millisecond
	snapshotsKept = 10
)

// Deps are the collaborators of the quiz screen. Events and Snapshots may
// be nil, in which case nothing is persisted.
type Deps struct {
	Assistant orchestrator.QuizGenerator
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Log       *zap.Logger
	Status    string // shown in the header, e.g. the generator name
}

// PlayScreen implements screen.Screen for a whole quiz round.
type PlayScreen struct {
	deps    Deps
	orch    *orchestrator.Orchestrator
	form    setupForm
	sess    *session.Session
	summary *scoring.Summary
	frame   int

	// pending collects commands queued by orchestrator hooks during Update.
	pending []tea.Cmd
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.BackBlocker = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a PlayScreen with the form prefilled from initial.
func New(deps Deps, initial quiz.Configuration) *PlayScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	s := &PlayScreen{
		deps: deps,
		orch: orchestrator.New(),
		form: newSetupForm(initial),
	}
	s.orch.SetHooks(orchestrator.Hooks{
		OnConfigured:   s.onConfigured,
		OnQuizFinished: s.onQuizFinished,
		OnPlayAgain:    s.onPlayAgain,
	})
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.form.topic.Init()}
	if s.form.topic.Value() == "" && s.deps.Snapshots != nil {
		cmds = append(cmds, s.loadLastConfiguration())
	}
	return tea.Batch(cmds...)
}

func (s *PlayScreen) Title() string {
	switch s.orch.Phase() {
	case orchestrator.PhasePlaying:
		return "Quiz: " + s.orch.Config().Topic
	case orchestrator.PhaseResults:
		return "Results"
	default:
		return "New Quiz"
	}
}

func (s *PlayScreen) Status() string { return s.deps.Status }

// BlocksBack keeps the screen open while a generation is in flight.
func (s *PlayScreen) BlocksBack() bool { return s.orch.Phase() == orchestrator.PhaseLoading }

// Phase exposes the orchestrator phase.
func (s *PlayScreen) Phase() orchestrator.Phase { return s.orch.Phase() }

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.orch.Phase() {
	case orchestrator.PhaseLoading:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case orchestrator.PhasePlaying:
		if s.sess != nil && s.sess.Answered() {
			return []layout.KeyHint{
				{Key: "H", Description: "Hint"},
				{Key: "", Description: "Next question shortly..."},
			}
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "H", Description: "Hint"},
			{Key: "Esc", Description: "Leave"},
		}
	case orchestrator.PhaseResults:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Play again"},
			{Key: "M", Description: "Menu"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case prefillMsg:
		if msg.Config != nil && s.orch.Phase() == orchestrator.PhaseConfig && s.form.topic.Value() == "" {
			s.form = newSetupForm(*msg.Config)
			cmd = s.form.topic.Focus()
		}
	case generatedMsg:
		cmd = s.handleGenerated(msg)
	case advanceMsg:
		cmd = s.handleAdvance(msg)
	case loadingTickMsg:
		if s.orch.Phase() == orchestrator.PhaseLoading {
			s.frame++
			cmd = loadingTicker()
		}
	case persistedMsg:
		if msg.Err != nil {
			s.deps.Log.Warn("persist failed", zap.String("what", msg.What), zap.Error(msg.Err))
		}
	case tea.KeyPressMsg:
		cmd = s.handleKey(msg)
	default:
		if s.orch.Phase() == orchestrator.PhaseConfig {
			s.form, cmd, _ = s.form.Update(msg)
		}
	}
	return s, s.flush(cmd)
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch s.orch.Phase() {
	case orchestrator.PhaseConfig:
		var cmd tea.Cmd
		var submit bool
		s.form, cmd, submit = s.form.Update(msg)
		if submit {
			return tea.Batch(cmd, s.submit())
		}
		return cmd

	case orchestrator.PhasePlaying:
		return s.handlePlayingKey(msg)

	case orchestrator.PhaseResults:
		switch msg.String() {
		case "enter", "r":
			if err := s.orch.PlayAgain(); err != nil {
				s.deps.Log.Error("play again", zap.Error(err))
			}
		case "m":
			return func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	// Loading ignores input.
	return nil
}

func (s *PlayScreen) handlePlayingKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.sess == nil {
		return nil
	}
	key := msg.String()
	if key == "h" {
		s.sess.ToggleHint()
		return nil
	}
	// A submitted question only waits for its advance tick.
	if s.sess.Answered() {
		return nil
	}
	switch key {
	case "1", "2", "3", "4":
		s.sess.SelectIndex(int(key[0] - '1'))
	case "up", "k":
		s.moveSelection(-1)
	case "down", "j":
		s.moveSelection(1)
	case "enter", "space":
		out, ok := s.sess.Submit()
		if !ok {
			return nil
		}
		id, index := s.sess.ID(), s.sess.Index()
		return tea.Tick(out.AdvanceAfter, func(time.Time) tea.Msg {
			return advanceMsg{SessionID: id, Index: index}
		})
	}
	return nil
}

func (s *PlayScreen) moveSelection(dir int) {
	opts := s.sess.Current().Options
	i := 0
	for j, o := range opts {
		if o == s.sess.Selected() {
			i = j + dir
			break
		}
	}
	if s.sess.Selected() == "" && dir < 0 {
		i = len(opts) - 1
	}
	i = (i + len(opts)) % len(opts)
	s.sess.SelectIndex(i)
}

// submit validates the form and, when valid, starts generation.
func (s *PlayScreen) submit() tea.Cmd {
	err := s.orch.Configure(s.form.Configuration())
	if err != nil {
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			s.form.SetErrors(verr)
			return nil
		}
		s.deps.Log.Error("configure", zap.Error(err))
		return nil
	}

	cfg := s.orch.Config()
	assistant := s.deps.Assistant
	generate := func() tea.Msg {
		questions, errMsg := assistant.GenerateQuiz(context.Background(), cfg)
		return generatedMsg{Questions: questions, Err: errMsg}
	}
	return tea.Batch(generate, loadingTicker())
}

func (s *PlayScreen) handleGenerated(msg generatedMsg) tea.Cmd {
	if err := s.orch.Generated(msg.Questions, msg.Err); err != nil {
		s.deps.Log.Warn("stale generation result", zap.Error(err))
		return nil
	}
	if s.orch.Phase() != orchestrator.PhasePlaying {
		return s.form.focusOn(fieldTopic)
	}

	sess, err := session.New(s.orch.Questions())
	if err != nil {
		s.deps.Log.Error("start session", zap.Error(err))
		return nil
	}
	s.sess = sess
	return nil
}

func (s *PlayScreen) handleAdvance(msg advanceMsg) tea.Cmd {
	if s.sess == nil || msg.SessionID != s.sess.ID() || msg.Index != s.sess.Index() {
		return nil
	}
	results, ok := s.sess.Advance()
	if !ok || results == nil || !s.sess.Finished() {
		return nil
	}
	if err := s.orch.Finish(*results); err != nil {
		s.deps.Log.Error("finish quiz", zap.Error(err))
	}
	return nil
}

func (s *PlayScreen) onConfigured(cfg quiz.Configuration) {
	s.summary = nil
	s.frame = 0
	if s.deps.Snapshots == nil {
		return
	}
	repo := s.deps.Snapshots
	s.pending = append(s.pending, func() tea.Msg {
		ctx := context.Background()
		snap := &store.Snapshot{Data: store.SnapshotData{Version: 1, LastConfiguration: &cfg}}
		if err := repo.Save(ctx, snap); err != nil {
			return persistedMsg{What: "snapshot", Err: err}
		}
		return persistedMsg{What: "snapshot", Err: repo.Prune(ctx, snapshotsKept)}
	})
}

func (s *PlayScreen) onQuizFinished(results quiz.Results) {
	sum := scoring.Summarize(results)
	s.summary = &sum

	s.deps.Log.Info("quiz finished",
		zap.String("session_id", s.sess.ID()),
		zap.String("topic", s.orch.Config().Topic),
		zap.Int("score", sum.Score),
		zap.Int("total", sum.Total),
		zap.Int("percentage", sum.Percentage),
	)

	if s.deps.Events == nil {
		return
	}
	repo := s.deps.Events
	data := store.QuizResultEventData{
		SessionID:  s.sess.ID(),
		Config:     s.orch.Config(),
		Results:    results,
		Percentage: sum.Percentage,
	}
	s.pending = append(s.pending, func() tea.Msg {
		return persistedMsg{What: "quiz result", Err: repo.AppendQuizResult(context.Background(), data)}
	})
}

func (s *PlayScreen) onPlayAgain() {
	s.sess = nil
	s.summary = nil
	s.form = newSetupForm(s.orch.Config())
	s.pending = append(s.pending, s.form.topic.Focus())
}

// flush batches cmd with anything the hooks queued.
func (s *PlayScreen) flush(cmd tea.Cmd) tea.Cmd {
	if len(s.pending) == 0 {
		return cmd
	}
	cmds := append(s.pending, cmd)
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *PlayScreen) loadLastConfiguration() tea.Cmd {
	repo := s.deps.Snapshots
	return func() tea.Msg {
		snap, err := repo.Latest(context.Background())
		if err != nil || snap == nil {
			return prefillMsg{}
		}
		return prefillMsg{Config: snap.Data.LastConfiguration}
	}
}

func loadingTicker() tea.Cmd {
	return tea.Tick(loadingTick, func(t time.Time) tea.Msg { return loadingTickMsg(t) })
}

