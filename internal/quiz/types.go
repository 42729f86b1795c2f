package quiz

import (
	"fmt"
	"strings"
)

// Difficulty is the requested difficulty level of a quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all difficulty levels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty parses a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", s)
}

// Next returns the following difficulty, wrapping from hard back to easy.
func (d Difficulty) Next() Difficulty {
	all := Difficulties()
	for i, known := range all {
		if d == known {
			return all[(i+1)%len(all)]
		}
	}
	return DifficultyEasy
}

// Prev returns the preceding difficulty, wrapping from easy to hard.
func (d Difficulty) Prev() Difficulty {
	all := Difficulties()
	for i, known := range all {
		if d == known {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return DifficultyEasy
}

// OptionsPerQuestion is the fixed number of choices for every question.
const OptionsPerQuestion = 4

// Question is a single multiple-choice question. The JSON shape matches the
// generation service wire format.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Hint          string   `json:"hint"`
}

// Check reports whether q has exactly four distinct options and a correct
// answer that is one of them.
func (q Question) Check() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("expected %d options, got %d", OptionsPerQuestion, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			return fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
	if !seen[q.CorrectAnswer] {
		return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer)
	}
	return nil
}

// ResultDetail records how a single question was answered.
type ResultDetail struct {
	Question string `json:"question"`
	// ProvidedAnswer is nil when the question was left unanswered.
	ProvidedAnswer *string `json:"providedAnswer"`
	CorrectAnswer  string  `json:"correctAnswer"`
}

// IsCorrect reports whether the provided answer matches the correct one.
func (d ResultDetail) IsCorrect() bool {
	return d.ProvidedAnswer != nil && *d.ProvidedAnswer == d.CorrectAnswer
}

// Results is the outcome of a finished quiz session.
type Results struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Details        []ResultDetail `json:"details"`
}

// Verify checks the internal consistency of r: one detail per question and
// a score equal to the number of correct details.
func (r Results) Verify() error {
	if r.TotalQuestions < 0 || r.Score < 0 {
		return fmt.Errorf("negative score or total")
	}
	if len(r.Details) != r.TotalQuestions {
		return fmt.Errorf("got %d details for %d questions", len(r.Details), r.TotalQuestions)
	}
	correct := 0
	for _, d := range r.Details {
		if d.IsCorrect() {
			correct++
		}
	}
	if correct != r.Score {
		return fmt.Errorf("score %d does not match %d correct answers", r.Score, correct)
	}
	return nil
}
