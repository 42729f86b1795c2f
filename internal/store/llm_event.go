package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "created_at", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insert(ctx, tableLLMRequests,
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		},
	)
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := builder().Select(llmEventColumns...).From(entsql.Table(tableLLMRequests))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	query, args := applyQueryOpts(sel, opts).Query()
	return r.scanLLMEvents(ctx, query, args)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	query, args := builder().Select(llmEventColumns...).
		From(entsql.Table(tableLLMRequests)).
		Where(entsql.EQ("id", id)).
		Query()
	events, err := r.scanLLMEvents(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usageBy(ctx, "model")
}

func (r *eventRepo) usageBy(ctx context.Context, column string) ([]UsageStat, error) {
	query, args := builder().Select(
		column,
		entsql.Count("*"),
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
		"COALESCE(AVG(latency_ms), 0)",
	).
		From(entsql.Table(tableLLMRequests)).
		GroupBy(column).
		OrderBy(column).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query usage by %s: %w", column, err)
	}
	defer rows.Close()

	var out []UsageStat
	for rows.Next() {
		var (
			key        string
			st         UsageStat
			avgLatency float64
		)
		if err := rows.Scan(&key, &st.Calls, &st.InputTokens, &st.OutputTokens, &avgLatency); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		if column == "purpose" {
			st.Purpose = key
		} else {
			st.Model = key
		}
		st.AvgLatencyMs = int64(avgLatency)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *eventRepo) scanLLMEvents(ctx context.Context, query string, args []any) ([]LLMRequestEvent, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var (
			e         LLMRequestEvent
			createdAt int64
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &createdAt, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
			&e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
		)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
