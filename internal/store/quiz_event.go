package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizzy/internal/quiz"
)

var quizResultColumns = []string{
	"id", "sequence", "created_at", "session_id", "topic", "difficulty",
	"num_questions", "score", "total", "percentage", "details",
}

func (r *eventRepo) AppendQuizResult(ctx context.Context, data QuizResultEventData) error {
	details := data.Results.Details
	if details == nil {
		details = []quiz.ResultDetail{}
	}
	b, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal result details: %w", err)
	}

	return r.insert(ctx, tableQuizResults,
		[]string{"session_id", "topic", "difficulty", "num_questions", "score", "total", "percentage", "details"},
		[]any{
			data.SessionID,
			data.Config.Topic,
			string(data.Config.Difficulty),
			data.Config.NumQuestions,
			data.Results.Score,
			data.Results.TotalQuestions,
			data.Percentage,
			string(b),
		},
	)
}

func (r *eventRepo) QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResultEvent, error) {
	sel := builder().Select(quizResultColumns...).From(entsql.Table(tableQuizResults))
	if opts.Topic != "" {
		sel.Where(entsql.EQ("topic", opts.Topic))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResultEvent
	for rows.Next() {
		var (
			e          QuizResultEvent
			createdAt  int64
			difficulty string
			details    string
			num        int
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &createdAt, &e.SessionID, &e.Config.Topic, &difficulty,
			&num, &e.Results.Score, &e.Results.TotalQuestions, &e.Percentage, &details,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt)
		e.Config.Difficulty = quiz.Difficulty(difficulty)
		e.Config.NumQuestions = num
		if err := json.Unmarshal([]byte(details), &e.Results.Details); err != nil {
			return nil, fmt.Errorf("decode details of result %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
