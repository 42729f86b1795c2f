package store

import (
	"context"
	"time"

	"github.com/abhisek/quizzy/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Topic  string    // exact topic match, quiz results only

	Purpose string // exact purpose match, LLM events only
}

// SnapshotData captures the user's saved preferences at a point in time.
type SnapshotData struct {
	Version int `json:"version"`

	// LastConfiguration is the most recently submitted quiz configuration,
	// used to prefill the setup form.
	LastConfiguration *quiz.Configuration `json:"last_configuration,omitempty"`
}

// Snapshot represents a point-in-time capture of preferences.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages preference snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates LLM usage for one purpose or model.
type UsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// QuizResultEventData captures a finished quiz.
type QuizResultEventData struct {
	SessionID  string
	Config     quiz.Configuration
	Results    quiz.Results
	Percentage int
}

// QuizResultEvent is a stored quiz result.
type QuizResultEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizResultEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]UsageStat, error)

	// AppendQuizResult records a finished quiz.
	AppendQuizResult(ctx context.Context, data QuizResultEventData) error

	// QueryQuizResults returns finished quizzes, newest first.
	QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResultEvent, error)
}
