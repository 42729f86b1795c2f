package quizgen

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/quiz"
)

// Validator checks a generated question. Implementations may normalize the
// question in place and must be safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for logs, e.g. "structural".
	Name() string

	// Validate returns nil if q passes.
	Validate(q *quiz.Question, cfg quiz.Configuration) *ValidationError
}

// ValidationError describes why a question was dropped.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// filter runs the validator chain over raw, dropping failing questions and
// repeats, and keeps at most cfg.NumQuestions.
func filter(raw []quiz.Question, cfg quiz.Configuration, validators []Validator, log *zap.Logger) []quiz.Question {
	out := make([]quiz.Question, 0, len(raw))
	seen := make(map[string]bool, len(raw))

next:
	for i := range raw {
		q := raw[i]
		for _, v := range validators {
			if verr := v.Validate(&q, cfg); verr != nil {
				log.Debug("dropped generated question",
					zap.Int("index", i),
					zap.String("validator", verr.Validator),
					zap.String("reason", verr.Message),
				)
				continue next
			}
		}
		key := strings.ToLower(strings.TrimSpace(q.Question))
		if seen[key] {
			log.Debug("dropped duplicate question", zap.Int("index", i))
			continue
		}
		seen[key] = true
		out = append(out, q)
		if cfg.NumQuestions > 0 && len(out) == cfg.NumQuestions {
			break
		}
	}
	return out
}
