package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/store"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(quizPayload), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)

	resp, err := mock.Generate(context.Background(), userRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != quizPayload || resp.Usage.InputTokens != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = mock.Generate(context.Background(), userRequest(nil))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}

	// Queue exhausted.
	_, err = mock.Generate(context.Background(), userRequest(nil))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
	if mock.CallCount() != 3 || mock.Calls[0].Messages[0].Content == "" {
		t.Fatalf("calls not recorded: %d", mock.CallCount())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, "quiz-gen")
	if p := PurposeFrom(ctx); p != "quiz-gen" {
		t.Fatalf("expected 'quiz-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"negative timeout", Config{Provider: "mock", Timeout: -time.Second}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("unexpected discovery: %+v, %v", cfg, ok)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
	if _, err := NewProvider(context.Background(), Config{Provider: ProviderGemini}, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

type recordingSink struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(quizPayload), Usage: Usage{InputTokens: 12, OutputTokens: 34}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	sink := &recordingSink{}
	p := WithLogging(mock, "gemini", sink, zap.NewNop())
	ctx := WithPurpose(context.Background(), "quiz-gen")

	if _, err := p.Generate(ctx, userRequest(quizSchema())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, userRequest(nil)); err == nil {
		t.Fatal("expected error")
	}

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sink.events))
	}
	ok := sink.events[0]
	if !ok.Success || ok.Purpose != "quiz-gen" || ok.Provider != "gemini" || ok.InputTokens != 12 {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[schema: test-quiz]") || ok.ResponseBody != quizPayload {
		t.Errorf("bodies not captured: %q / %q", ok.RequestBody, ok.ResponseBody)
	}
	if sink.events[1].Success || sink.events[1].ErrorMessage == "" {
		t.Errorf("unexpected failure event: %+v", sink.events[1])
	}
}

func TestLoggingProvider_SinkFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", &recordingSink{err: errors.New("disk full")}, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeoutProvider(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if p.ModelID() != "blocking" {
		t.Fatalf("ModelID not delegated: %q", p.ModelID())
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 0); got != 0.3 {
		t.Errorf("input cost = %v, want 0.3", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}

	// OpenRouter IDs price as the upstream model.
	if routed := LookupCost("google/gemini-2.5-flash"); routed == nil || *routed != *c {
		t.Errorf("openrouter lookup = %v, want %v", routed, c)
	}
	if usd, ok := EstimateCost("openai/gpt-4o-mini:free", 0, 1_000_000); !ok || usd != 0.6 {
		t.Errorf("EstimateCost = %v, %v", usd, ok)
	}
	if _, ok := EstimateCost("acme/unknown", 1, 1); ok {
		t.Error("unknown upstream model priced")
	}
}

func TestIsMalformed(t *testing.T) {
	if !IsMalformed(&ErrInvalidResponse{Err: errors.New("x")}) || !IsMalformed(&ErrMaxTokensExceeded{}) {
		t.Error("invalid and truncated responses are malformed")
	}
	if IsMalformed(&ErrProviderUnavailable{}) || IsMalformed(&ErrRateLimit{}) {
		t.Error("transport errors are not malformed")
	}
}

func TestRetryAfterHeader(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"12", 12 * time.Second},
		{"-3", 0},
		{now.Add(30 * time.Second).Format(http.TimeFormat), 30 * time.Second},
		{now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.value != "" {
			h.Set("Retry-After", tt.value)
		}
		if got := retryAfter(h, now); got != tt.want {
			t.Errorf("retryAfter(%q) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestResponseDecode(t *testing.T) {
	var out struct {
		Questions []map[string]any `json:"questions"`
	}
	ok := &Response{Content: json.RawMessage(quizPayload), Model: "m"}
	if err := ok.Decode(&out); err != nil || len(out.Questions) != 1 {
		t.Fatalf("decode = %v, %d questions", err, len(out.Questions))
	}

	bad := &Response{Content: json.RawMessage(`{"questions":`), Model: "m"}
	err := bad.Decode(&out)
	if !IsMalformed(err) {
		t.Fatalf("expected a malformed-response error, got: %T (%v)", err, err)
	}
}
