package quizgen

import (
	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quiz"
)

// QuizSchema is the structured-output schema for a generated quiz.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A list of multiple-choice quiz questions with answers and hints",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The quiz questions, in the order they should be asked",
				"minItems":    quiz.MinQuestions,
				"maxItems":    quiz.MaxQuestions,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the player",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 4 distinct answer options",
							"minItems":    quiz.OptionsPerQuestion,
							"maxItems":    quiz.OptionsPerQuestion,
							"items":       map[string]any{"type": "string"},
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The correct answer, copied exactly from options",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A short hint that helps without giving the answer away",
						},
					},
					"required":             []any{"question", "options", "correctAnswer", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// quizOutput is the raw generated payload before validation.
type quizOutput struct {
	Questions []quiz.Question `json:"questions"`
}
