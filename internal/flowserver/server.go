// Package flowserver exposes quiz generation as an HTTP flow endpoint that
// FlowClient and other callers can post configurations to.
package flowserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/llm"
	"github.com/abhisek/quizzy/internal/quiz"
	"github.com/abhisek/quizzy/internal/quizgen"
)

const maxRequestBody = 64 << 10

// StatusInvalidArgument is the flow error status for a rejected request.
const StatusInvalidArgument = "INVALID_ARGUMENT"

// Server answers flow requests with a Generator.
type Server struct {
	gen quizgen.Generator
	log *zap.Logger
}

// New creates a Server. gen must not be nil.
func New(gen quizgen.Generator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{gen: gen, log: log}
}

// Handler returns the routes served by s.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+quizgen.FlowPath, s.handleQuizSuggestions)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("flow server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("flow server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuizSuggestions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req quizgen.FlowRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.log.Debug("bad flow request", zap.Error(err))
		writeError(w, http.StatusBadRequest, StatusInvalidArgument, "request body must be {\"data\": {topic, difficulty, numQuestions}}")
		return
	}

	cfg := req.Data.Normalized()
	if err := cfg.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, StatusInvalidArgument, err.Error())
		return
	}

	questions, err := s.gen.Generate(llm.WithPurpose(r.Context(), llm.PurposeFlow), cfg)
	if err != nil {
		// Callers get an empty list on failure; the cause stays in the log.
		s.log.Error("flow generation failed",
			zap.String("topic", cfg.Topic),
			zap.String("difficulty", string(cfg.Difficulty)),
			zap.Int("num_questions", cfg.NumQuestions),
			zap.String("kind", string(quizgen.KindOf(err))),
			zap.Error(err),
		)
		questions = nil
	}
	if questions == nil {
		questions = []quiz.Question{}
	}

	s.log.Info("flow request served",
		zap.String("topic", cfg.Topic),
		zap.Int("questions", len(questions)),
		zap.Duration("latency", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, quizgen.FlowResponse{Result: &quizgen.FlowOutput{Questions: questions}})
}

func writeError(w http.ResponseWriter, code int, status, msg string) {
	writeJSON(w, code, quizgen.FlowResponse{Error: &quizgen.FlowError{Status: status, Message: msg}})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
