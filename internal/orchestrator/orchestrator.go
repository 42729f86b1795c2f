// Package orchestrator drives a quiz page through its phases: configuring,
// waiting for generation, playing and showing results.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizzy/internal/quiz"
)

// Phase is the page-level state.
type Phase int

const (
	PhaseConfig  Phase = iota // Collecting the configuration
	PhaseLoading              // Waiting for questions
	PhasePlaying              // Answering questions
	PhaseResults              // Showing the summary
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseResults:
		return "results"
	default:
		return "config"
	}
}

// ErrWrongPhase is returned when a transition is attempted from a phase
// that does not allow it.
var ErrWrongPhase = errors.New("transition not allowed in current phase")

// QuizGenerator is the generation boundary. It reports failure through a
// non-empty message rather than an error.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, cfg quiz.Configuration) ([]quiz.Question, string)
}

// Hooks are optional callbacks fired after the matching transition.
type Hooks struct {
	OnConfigured   func(quiz.Configuration)
	OnQuizFinished func(quiz.Results)
	OnPlayAgain    func()
}

// Orchestrator is the page state machine. It is owned by one goroutine.
type Orchestrator struct {
	phase     Phase
	config    quiz.Configuration
	questions []quiz.Question
	result    *quiz.Results
	err       string
	hooks     Hooks
}

// New returns an Orchestrator in PhaseConfig with nothing loaded.
func New() *Orchestrator {
	return &Orchestrator{phase: PhaseConfig}
}

// SetHooks replaces the transition callbacks.
func (o *Orchestrator) SetHooks(h Hooks) { o.hooks = h }

func (o *Orchestrator) Phase() Phase               { return o.phase }
func (o *Orchestrator) Config() quiz.Configuration { return o.config }
func (o *Orchestrator) Result() *quiz.Results      { return o.result }
func (o *Orchestrator) Err() string                { return o.err }
func (o *Orchestrator) Questions() []quiz.Question { return o.questions }

// Configure accepts a configuration and moves to PhaseLoading. An invalid
// configuration leaves the phase unchanged and returns a
// *quiz.ValidationError.
func (o *Orchestrator) Configure(cfg quiz.Configuration) error {
	if o.phase != PhaseConfig {
		return fmt.Errorf("configure in %s: %w", o.phase, ErrWrongPhase)
	}
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return err
	}

	o.config = cfg
	o.err = ""
	o.phase = PhaseLoading
	if o.hooks.OnConfigured != nil {
		o.hooks.OnConfigured(cfg)
	}
	return nil
}

// Generated records the outcome of generation. Questions move the page to
// PhasePlaying; no questions return it to PhaseConfig with errMsg shown.
func (o *Orchestrator) Generated(questions []quiz.Question, errMsg string) error {
	if o.phase != PhaseLoading {
		return fmt.Errorf("generated in %s: %w", o.phase, ErrWrongPhase)
	}
	if len(questions) == 0 {
		if errMsg == "" {
			errMsg = "No questions were generated."
		}
		o.questions = nil
		o.err = errMsg
		o.phase = PhaseConfig
		return nil
	}
	o.questions = questions
	o.err = ""
	o.phase = PhasePlaying
	return nil
}

// Finish stores the final results and moves to PhaseResults.
func (o *Orchestrator) Finish(results quiz.Results) error {
	if o.phase != PhasePlaying {
		return fmt.Errorf("finish in %s: %w", o.phase, ErrWrongPhase)
	}
	o.result = &results
	o.phase = PhaseResults
	if o.hooks.OnQuizFinished != nil {
		o.hooks.OnQuizFinished(results)
	}
	return nil
}

// PlayAgain clears questions, result and error and returns to PhaseConfig.
// The last configuration is kept for prefilling the form.
func (o *Orchestrator) PlayAgain() error {
	if o.phase != PhaseResults {
		return fmt.Errorf("play again in %s: %w", o.phase, ErrWrongPhase)
	}
	o.questions = nil
	o.result = nil
	o.err = ""
	o.phase = PhaseConfig
	if o.hooks.OnPlayAgain != nil {
		o.hooks.OnPlayAgain()
	}
	return nil
}

// Submit runs Configure, the generator call and Generated in sequence,
// blocking until generation finishes.
func (o *Orchestrator) Submit(ctx context.Context, gen QuizGenerator, cfg quiz.Configuration) error {
	if err := o.Configure(cfg); err != nil {
		return err
	}
	questions, msg := gen.GenerateQuiz(ctx, o.config)
	return o.Generated(questions, msg)
}
