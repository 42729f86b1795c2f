package quizgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizzy/internal/quiz"
)

func flowServer(t *testing.T, status int, body string, got *FlowRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != FlowPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFlowClient_Success(t *testing.T) {
	var sent FlowRequest
	srv := flowServer(t, http.StatusOK,
		`{"result":{"questions":[{"question":"Capital of France?","options":["Berlin","Madrid","Paris","Rome"],"correctAnswer":"Paris","hint":"City of Light."}]}}`,
		&sent)

	c := NewFlowClient(srv.URL+"/", srv.Client(), DefaultConfig(), nil)
	qs, err := c.Generate(context.Background(), geographyConfig(1))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Paris", qs[0].CorrectAnswer)
	assert.Equal(t, geographyConfig(1), sent.Data)
}

func TestFlowClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"status":"INTERNAL","message":"boom"}}`, KindTransport},
		{"error envelope", http.StatusOK, `{"error":{"status":"UNAVAILABLE","message":"later"}}`, KindTransport},
		{"not json", http.StatusOK, `<html>`, KindMalformed},
		{"no result", http.StatusOK, `{}`, KindMalformed},
		{"empty list", http.StatusOK, `{"result":{"questions":[]}}`, KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := flowServer(t, tt.status, tt.body, nil)
			c := NewFlowClient(srv.URL, srv.Client(), DefaultConfig(), nil)
			_, err := c.Generate(context.Background(), geographyConfig(2))
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestFlowClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewFlowClient(url, nil, DefaultConfig(), nil)
	_, err := c.Generate(context.Background(), geographyConfig(2))
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestFlowClient_InvalidConfig(t *testing.T) {
	c := NewFlowClient("http://127.0.0.1:0", nil, DefaultConfig(), nil)
	_, err := c.Generate(context.Background(), quiz.Configuration{Topic: "Go", Difficulty: "expert", NumQuestions: 3})
	assert.ErrorIs(t, err, quiz.ErrInvalidConfiguration)
}
