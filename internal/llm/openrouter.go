package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouter ranks and labels traffic by these headers.
	openRouterReferer = "https://github.com/abhisek/quizzy"
	openRouterTitle   = "Quizzy"
)

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter, which
// speaks the OpenAI chat completions protocol. Model IDs are passed through
// unmapped since OpenRouter namespaces them by vendor.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL
	if config.BaseURL == "" {
		config.BaseURL = defaultOpenRouterBaseURL
	}
	config.HTTPClient = &http.Client{
		Transport: &attributionTransport{base: http.DefaultTransport},
	}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}}, nil
}

// attributionTransport adds the OpenRouter app attribution headers.
type attributionTransport struct {
	base http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}
