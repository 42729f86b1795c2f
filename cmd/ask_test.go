package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/scoring"
)

var askConfig = quiz.Configuration{Topic: "General", Difficulty: quiz.DifficultyEasy, NumQuestions: 3}

func TestAskQuizScoresAnswers(t *testing.T) {
	gen := quizgen.NewAssistant(&quizgen.SampleGenerator{}, nil)
	// Paris (3), a hint, then an invalid line, Earth (wrong), 56 via letter.
	in := strings.NewReader("3\nh\nx\n1\nb\n")
	var out bytes.Buffer

	sess, summary, err := askQuiz(context.Background(), gen, askConfig, in, &out)
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Equal(t, 2, summary.Score)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 67, summary.Percentage)
	assert.Equal(t, scoring.Tier2, summary.Tier)

	text := out.String()
	assert.Contains(t, text, "── Question 1/3 ──")
	assert.Contains(t, text, "Hint: Named after the Roman god of war.")
	assert.Contains(t, text, "Please enter a number from 1 to 4.")
	assert.Contains(t, text, "✗ Incorrect. Answer: Mars")
	assert.Contains(t, text, "── Score: 2/3 (67%) ──")
}

func TestAskQuizInputClosed(t *testing.T) {
	gen := quizgen.NewAssistant(&quizgen.SampleGenerator{}, nil)
	_, _, err := askQuiz(context.Background(), gen, askConfig, strings.NewReader("3\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, errInputClosed)
}

type emptyGenerator struct{}

func (emptyGenerator) GenerateQuiz(context.Context, quiz.Configuration) ([]quiz.Question, string) {
	return nil, quizgen.MsgNoQuestions
}

func TestAskQuizNoQuestions(t *testing.T) {
	_, _, err := askQuiz(context.Background(), emptyGenerator{}, askConfig, strings.NewReader(""), &bytes.Buffer{})
	assert.EqualError(t, err, quizgen.MsgNoQuestions)
}
