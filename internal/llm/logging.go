package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/quizzy/internal/store"
)

// EventSink receives one record per LLM request.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider is a decorator that records every LLM request as an
// event and writes a structured log line for it.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	log      *zap.Logger
}

// WithLogging wraps a Provider with event recording. sink and log may be nil.
func WithLogging(p Provider, providerName string, sink EventSink, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: providerName, sink: sink, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			zap.String("provider", data.Provider),
			zap.String("model", data.Model),
			zap.String("purpose", purpose),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
	} else {
		l.log.Debug("llm request",
			zap.String("provider", data.Provider),
			zap.String("model", data.Model),
			zap.String("purpose", purpose),
			zap.Duration("latency", latency),
			zap.Int("input_tokens", data.InputTokens),
			zap.Int("output_tokens", data.OutputTokens),
		)
	}

	// Recording must never fail the request.
	if l.sink != nil {
		if logErr := l.sink.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record llm request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
