package quizgen

import (
	"fmt"

	"github.com/abhisek/quizzy/internal/quiz"
)

const systemPrompt = `You write multiple-choice quizzes.

Rules:
- Every question has exactly 4 distinct options and exactly one of them is correct.
- correctAnswer must be copied character for character from options.
- Distractors should be plausible, not obviously wrong.
- Hints are one short sentence and must not reveal the answer.
- Match the requested difficulty: easy is common knowledge, hard is specialist detail.
- Do not repeat a question within the same quiz.`

// buildUserMessage asks for the quiz described by cfg.
func buildUserMessage(cfg quiz.Configuration) string {
	return fmt.Sprintf(
		"Generate a quiz with %d questions on the topic of %q with a difficulty level of %q. "+
			"Each question should be multiple choice with %d options. "+
			"Provide the question, the options, the correct answer (which must be one of the options), and a short hint. "+
			`Please format the output as a JSON object with a "questions" array.`,
		cfg.NumQuestions, cfg.Topic, cfg.Difficulty, quiz.OptionsPerQuestion,
	)
}
