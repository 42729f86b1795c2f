package play

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/ui/components"
)

type field int

const (
	fieldTopic field = iota
	fieldDifficulty
	fieldNumQuestions
	fieldStart
	numFields
)

const topicCharLimit = 120

// setupForm collects a quiz.Configuration.
type setupForm struct {
	topic      components.TextInput
	difficulty quiz.Difficulty
	count      int
	focus      field
	errs       map[string]string
}

func newSetupForm(cfg quiz.Configuration) setupForm {
	f := setupForm{
		topic:      components.NewTextInput("e.g. World Geography, Go concurrency, Jazz", topicCharLimit),
		difficulty: cfg.Difficulty,
		count:      cfg.NumQuestions,
		errs:       map[string]string{},
	}
	f.topic.SetValue(cfg.Topic)
	if f.difficulty == "" {
		f.difficulty = quiz.DifficultyEasy
	}
	if f.count == 0 {
		f.count = quiz.DefaultQuestions
	}
	return f
}

// Configuration returns what the form currently holds.
func (f setupForm) Configuration() quiz.Configuration {
	return quiz.Configuration{
		Topic:        f.topic.Value(),
		Difficulty:   f.difficulty,
		NumQuestions: f.count,
	}
}

// SetErrors shows the messages from a failed validation.
func (f *setupForm) SetErrors(verr *quiz.ValidationError) {
	f.errs = map[string]string{}
	for _, fe := range verr.Fields {
		f.errs[fe.Field] = fe.Message()
	}
	if msg := f.errs["topic"]; msg != "" {
		f.topic.SetError(msg)
		f.focusOn(fieldTopic)
	}
}

func (f *setupForm) focusOn(target field) tea.Cmd {
	f.focus = target
	if target == fieldTopic {
		return f.topic.Focus()
	}
	f.topic.Blur()
	return nil
}

// Update handles a key press. submit is true when the user asked to start.
func (f setupForm) Update(msg tea.Msg) (form setupForm, cmd tea.Cmd, submit bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if f.focus == fieldTopic {
			f.topic, cmd = f.topic.Update(msg)
		}
		return f, cmd, false
	}

	switch kmsg.String() {
	case "tab", "down":
		return f, f.focusOn((f.focus + 1) % numFields), false
	case "shift+tab", "up":
		return f, f.focusOn((f.focus + numFields - 1) % numFields), false
	case "enter":
		if f.focus == fieldStart || f.focus == fieldTopic {
			return f, nil, true
		}
		return f, f.focusOn(f.focus + 1), false
	}

	switch f.focus {
	case fieldTopic:
		f.topic, cmd = f.topic.Update(msg)
		delete(f.errs, "topic")
	case fieldDifficulty:
		switch kmsg.String() {
		case "right", "l", "space":
			f.difficulty = f.difficulty.Next()
		case "left", "h":
			f.difficulty = f.difficulty.Prev()
		case "1", "2", "3":
			n, _ := strconv.Atoi(kmsg.String())
			f.difficulty = quiz.Difficulties()[n-1]
		}
		delete(f.errs, "difficulty")
	case fieldNumQuestions:
		switch kmsg.String() {
		case "right", "l", "+", "=":
			f.count = clampCount(f.count + 1)
		case "left", "h", "-":
			f.count = clampCount(f.count - 1)
		}
		delete(f.errs, "numQuestions")
	}
	return f, cmd, false
}

func clampCount(n int) int {
	return min(max(n, quiz.MinQuestions), quiz.MaxQuestions)
}
