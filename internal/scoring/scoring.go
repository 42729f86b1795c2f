// Package scoring turns finished quiz results into a percentage and a
// feedback tier.
package scoring

import (
	"math"

	"github.com/abhisek/quizzy/internal/quiz"
)

// Tier is a qualitative feedback band.
type Tier int

const (
	Tier1 Tier = iota + 1 // below 50%
	Tier2                 // 50% and up
	Tier3                 // 80% and up
	Tier4                 // perfect score
)

// Message returns the feedback line shown for the tier.
func (t Tier) Message() string {
	switch t {
	case Tier4:
		return "Perfect Score! You are a genius!"
	case Tier3:
		return "Excellent work! You really know your stuff."
	case Tier2:
		return "Good job! A solid performance."
	default:
		return "Nice try! Keep learning and try again."
	}
}

func (t Tier) String() string {
	switch t {
	case Tier4:
		return "perfect"
	case Tier3:
		return "excellent"
	case Tier2:
		return "good"
	default:
		return "try-again"
	}
}

// Percentage returns the score as a whole percentage of the total, rounded
// half away from zero. A quiz with no questions scores 0.
func Percentage(r quiz.Results) int {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(r.Score) / float64(r.TotalQuestions) * 100))
}

// TierFor maps a percentage to its feedback tier.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 100:
		return Tier4
	case percentage >= 80:
		return Tier3
	case percentage >= 50:
		return Tier2
	default:
		return Tier1
	}
}

// Summary is the presentation-ready view of a finished quiz.
type Summary struct {
	Score      int
	Total      int
	Percentage int
	Tier       Tier
	Message    string
	Details    []quiz.ResultDetail
}

// Summarize derives a Summary from r. It does not modify r.
func Summarize(r quiz.Results) Summary {
	pct := Percentage(r)
	tier := TierFor(pct)
	details := make([]quiz.ResultDetail, len(r.Details))
	copy(details, r.Details)
	return Summary{
		Score:      r.Score,
		Total:      r.TotalQuestions,
		Percentage: pct,
		Tier:       tier,
		Message:    tier.Message(),
		Details:    details,
	}
}
