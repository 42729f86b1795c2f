package quizgen

// Config controls the behavior of the LLMGenerator and FlowClient.
type Config struct {
	// Validators is the ordered list of validators run on every generated
	// question. The first failure drops the question.
	Validators []Validator

	// BaseTokens and TokensPerQuestion size the response budget as
	// BaseTokens + TokensPerQuestion*NumQuestions.
	BaseTokens        int
	TokensPerQuestion int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
		},
		BaseTokens:        256,
		TokensPerQuestion: 320,
		Temperature:       0.7,
	}
}

// MaxTokens returns the response budget for a quiz of n questions.
func (c Config) MaxTokens(n int) int {
	return c.BaseTokens + c.TokensPerQuestion*n
}
