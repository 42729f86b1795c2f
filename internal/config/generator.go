package config

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quizgen"
)

// ErrNoProvider is returned by NewGenerator when no LLM provider could be
// configured or discovered.
var ErrNoProvider = errors.New("no LLM provider configured: set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY), or use the sample provider")

// GeneratorName describes the generator NewGenerator would build.
func (c *Config) GeneratorName() string {
	switch {
	case c.Flow.URL != "":
		return "flow " + c.Flow.URL
	case c.LLM.Provider == "":
		return "none"
	default:
		return c.LLM.Provider
	}
}

// NewGenerator builds the question generator selected by the configuration:
// a remote flow when flow.url is set, the sample set for provider "sample",
// otherwise an LLM provider. sink may be nil.
func (c *Config) NewGenerator(ctx context.Context, sink llm.EventSink, log *zap.Logger) (quizgen.Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch {
	case c.Flow.URL != "":
		client := &http.Client{Timeout: c.Flow.Timeout}
		return quizgen.NewFlowClient(c.Flow.URL, client, quizgen.DefaultConfig(), log), nil
	case c.LLM.Provider == ProviderSample:
		return &quizgen.SampleGenerator{}, nil
	case c.LLM.Provider == "":
		return nil, ErrNoProvider
	}

	provider, err := llm.NewProvider(ctx, c.LLM, sink, log)
	if err != nil {
		return nil, err
	}
	return quizgen.New(provider, quizgen.DefaultConfig(), log), nil
}
