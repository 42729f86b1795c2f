package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// quizPayload is a one-question reply in the shape quiz generation asks for.
const quizPayload = `{"questions":[{"question":"What is the capital of France?","options":["Berlin","Madrid","Paris","Rome"],"correctAnswer":"Paris","hint":"City of Light."}]}`

func quizSchema() *Schema {
	return &Schema{
		Name:        "test-quiz",
		Description: "A list of quiz questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":      map[string]any{"type": "string"},
							"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
							"correctAnswer": map[string]any{"type": "string"},
							"hint":          map[string]any{"type": "string"},
						},
						"required": []any{"question", "options", "correctAnswer", "hint"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}
}

func userRequest(schema *Schema) Request {
	return SingleTurn("You write quizzes.", "Generate a quiz about geography.", schema, 256)
}

func jsonServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}
