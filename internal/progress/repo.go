package progress

import (
	"context"
	"fmt"
	"time"
)

// Modality is the input channel a response arrived through. Voice responses
// are assumed already transcribed; the store only records the channel.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityVoice Modality = "voice"
)

// Valid reports whether m is a known modality.
func (m Modality) Valid() bool {
	return m == ModalityText || m == ModalityVoice
}

// Attempt is a single graded learner response, as submitted by the caller.
// Sequence and timestamp are assigned by the store at append time so that
// log order never depends on caller clocks.
type Attempt struct {
	TopicID    string
	Difficulty int
	Score      float64
	Modality   Modality
}

// Validate checks the attempt's fields before it enters the log. Attempts
// are immutable once appended, so nothing malformed may get in.
func (a Attempt) Validate() error {
	if a.TopicID == "" {
		return fmt.Errorf("attempt: topic ID is empty")
	}
	if a.Difficulty < 1 || a.Difficulty > 5 {
		return fmt.Errorf("attempt: difficulty %d out of range [1,5]", a.Difficulty)
	}
	if a.Score < 0 || a.Score > 1 {
		return fmt.Errorf("attempt: score %.4f out of range [0,1]", a.Score)
	}
	if !a.Modality.Valid() {
		return fmt.Errorf("attempt: unknown modality %q", a.Modality)
	}
	return nil
}

// AttemptRecord is an attempt as stored: the caller's fields plus the
// store-assigned sequence and timestamp.
type AttemptRecord struct {
	Sequence  int64
	LearnerID string
	CreatedAt time.Time
	Attempt
}

// AttemptRepo provides append and replay access to the attempt log.
// The log is strictly append-only: no method updates or removes a record.
type AttemptRepo interface {
	// Append validates and persists one attempt, assigning its sequence
	// and timestamp. A transient failure is retried once before a
	// *StorageError is returned.
	Append(ctx context.Context, learnerID string, a Attempt) (*AttemptRecord, error)

	// History returns the learner's full attempt log, oldest first.
	History(ctx context.Context, learnerID string) ([]AttemptRecord, error)

	// HistoryForTopic returns the learner's attempts on one topic,
	// oldest first.
	HistoryForTopic(ctx context.Context, learnerID, topicID string) ([]AttemptRecord, error)

	// HistorySince returns attempts with sequence > after, oldest first.
	// Used to catch a snapshot up without replaying the full log.
	HistorySince(ctx context.Context, learnerID string, after int64) ([]AttemptRecord, error)
}

// Snapshot caches a learner's derived mastery state at a log position.
// It is a pure optimization: discarding it and replaying the attempt log
// must always reproduce the same state.
type Snapshot struct {
	LearnerID string
	Sequence  int64
	CreatedAt time.Time
	Data      []byte
}

// SnapshotRepo manages per-learner derived-state snapshots.
type SnapshotRepo interface {
	// Save stores snap, replacing any previous snapshot for the learner.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the learner's snapshot, or nil if none exists.
	Latest(ctx context.Context, learnerID string) (*Snapshot, error)

	// Delete removes the learner's snapshot if present.
	Delete(ctx context.Context, learnerID string) error
}

// LLMRequestData captures a single LLM API call for the request log.
type LLMRequestData struct {
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

// LLMRequest is a logged LLM call as stored.
type LLMRequest struct {
	ID        int
	CreatedAt time.Time
	LLMRequestData
}

// PurposeUsage aggregates token usage for one request purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QueryOpts configures request-log queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// RequestLog records and inspects LLM API calls.
type RequestLog interface {
	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestData) error

	// QueryLLMRequests returns logged calls, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequest, error)

	// GetLLMRequest returns one logged call by ID, or nil if not found.
	GetLLMRequest(ctx context.Context, id int) (*LLMRequest, error)

	// UsageByPurpose aggregates usage grouped by purpose label.
	UsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// UsageByModel aggregates usage grouped by served model.
	UsageByModel(ctx context.Context) ([]ModelUsage, error)
}
