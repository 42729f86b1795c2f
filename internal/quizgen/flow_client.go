package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/quiz"
)

// maxFlowResponse caps how much of a flow reply is read.
const maxFlowResponse = 1 << 20

// FlowClient implements Generator by calling a remote generation flow over
// HTTP, for example another quizzy instance running "quizzy serve".
type FlowClient struct {
	baseURL string
	http    *http.Client
	config  Config
	log     *zap.Logger
}

// NewFlowClient creates a client for the flow served at baseURL. A nil
// httpClient uses http.DefaultClient.
func NewFlowClient(baseURL string, httpClient *http.Client, cfg Config, log *zap.Logger) *FlowClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FlowClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		config:  cfg,
		log:     log,
	}
}

func (c *FlowClient) Generate(ctx context.Context, cfg quiz.Configuration) ([]quiz.Question, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(FlowRequest{Data: cfg})
	if err != nil {
		return nil, fmt.Errorf("encode flow request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+FlowPath, bytes.NewReader(body))
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Err: fmt.Errorf("build flow request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Err: fmt.Errorf("call flow: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFlowResponse))
	if err != nil {
		return nil, &GenerationError{Kind: KindTransport, Err: fmt.Errorf("read flow response: %w", err)}
	}

	var out FlowResponse
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Error != nil {
			msg = out.Error.Status + ": " + out.Error.Message
		}
		return nil, &GenerationError{Kind: KindTransport, Err: fmt.Errorf("flow returned %d: %s", resp.StatusCode, msg)}
	}
	if decodeErr != nil {
		return nil, &GenerationError{Kind: KindMalformed, Err: fmt.Errorf("decode flow response: %w", decodeErr)}
	}
	if out.Error != nil {
		return nil, &GenerationError{Kind: KindTransport, Err: fmt.Errorf("flow error %s: %s", out.Error.Status, out.Error.Message)}
	}
	if out.Result == nil {
		return nil, &GenerationError{Kind: KindMalformed, Err: fmt.Errorf("flow response has no result")}
	}

	questions := filter(out.Result.Questions, cfg, c.config.Validators, c.log)
	if len(questions) == 0 {
		return nil, &GenerationError{Kind: KindEmpty, Err: ErrNoQuestions}
	}
	return questions, nil
}
