package scoring

import (
	"reflect"
	"testing"

	"github.com/abhisek/quizzy/internal/quiz"
)

func results(score, total int) quiz.Results {
	return quiz.Results{Score: score, TotalQuestions: total}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 0, 0},
		{5, 5, 100},
		{4, 5, 80},
		{2, 5, 40},
		{2, 3, 67},
		{1, 3, 33},
		{1, 8, 13}, // 12.5 rounds up
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := Percentage(results(tt.score, tt.total)); got != tt.want {
			t.Errorf("Percentage(%d/%d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		pct  int
		want Tier
	}{
		{100, Tier4},
		{99, Tier3},
		{80, Tier3},
		{79, Tier2},
		{50, Tier2},
		{49, Tier1},
		{40, Tier1},
		{0, Tier1},
	}
	for _, tt := range tests {
		if got := TierFor(tt.pct); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestTierMessages(t *testing.T) {
	if Tier4.Message() != "Perfect Score! You are a genius!" {
		t.Errorf("Tier4 message = %q", Tier4.Message())
	}
	if Tier1.Message() != "Nice try! Keep learning and try again." {
		t.Errorf("Tier1 message = %q", Tier1.Message())
	}
}

func TestSummarize(t *testing.T) {
	p := "Paris"
	r := quiz.Results{
		Score:          1,
		TotalQuestions: 2,
		Details: []quiz.ResultDetail{
			{Question: "Capital of France?", ProvidedAnswer: &p, CorrectAnswer: "Paris"},
			{Question: "Red planet?", CorrectAnswer: "Mars"},
		},
	}

	s := Summarize(r)
	if s.Percentage != 50 || s.Tier != Tier2 || s.Message != Tier2.Message() {
		t.Errorf("unexpected summary: %+v", s)
	}

	again := Summarize(r)
	if !reflect.DeepEqual(s, again) {
		t.Error("Summarize is not idempotent")
	}

	s.Details[0].Question = "changed"
	if r.Details[0].Question != "Capital of France?" {
		t.Error("Summarize shares details with its input")
	}
}
