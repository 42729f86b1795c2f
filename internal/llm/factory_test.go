package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewProvider_DefaultSendsOneRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"server_error","message":"boom"}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.BaseURL = srv.URL + "/v1"

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	_, err = p.Generate(context.Background(), userRequest(nil))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("outbound requests = %d, want 1", n)
	}
}

func TestNewProvider_RetryOptIn(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"server_error","message":"boom"}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.BaseURL = srv.URL + "/v1"
	cfg.Retry = RetryConfig{MaxAttempts: 2, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1}

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := p.Generate(context.Background(), userRequest(nil)); err == nil {
		t.Fatal("expected error")
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("outbound requests = %d, want 2", n)
	}
}
