package progress

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timeFormat is how timestamps are stored. RFC 3339 keeps rows readable in
// the sqlite shell and sorts lexicographically within a single writer.
const timeFormat = time.RFC3339Nano

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) Append(ctx context.Context, learnerID string, a Attempt) (*AttemptRecord, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("append attempt: learner ID is empty")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	rec, err := r.appendOnce(ctx, learnerID, a)
	if err == nil {
		return rec, nil
	}
	if ctx.Err() != nil {
		return nil, &StorageError{Op: "append attempt", Err: err}
	}

	// One retry: lock contention is the common transient failure for a
	// busy local database. A second failure is reported, never swallowed.
	rec, err = r.appendOnce(ctx, learnerID, a)
	if err != nil {
		return nil, &StorageError{Op: "append attempt", Err: err}
	}
	return rec, nil
}

// appendOnce allocates a sequence number and inserts the row. A failed
// insert leaves a gap in the sequence, which the replay logic tolerates.
func (r *attemptRepo) appendOnce(ctx context.Context, learnerID string, a Attempt) (*AttemptRecord, error) {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempts (sequence, learner_id, topic_id, difficulty, score, modality, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seq, learnerID, a.TopicID, a.Difficulty, a.Score, string(a.Modality), now.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	return &AttemptRecord{
		Sequence:  seq,
		LearnerID: learnerID,
		CreatedAt: now,
		Attempt:   a,
	}, nil
}

func (r *attemptRepo) History(ctx context.Context, learnerID string) ([]AttemptRecord, error) {
	return r.query(ctx, learnerID, "", 0)
}

func (r *attemptRepo) HistoryForTopic(ctx context.Context, learnerID, topicID string) ([]AttemptRecord, error) {
	return r.query(ctx, learnerID, topicID, 0)
}

func (r *attemptRepo) HistorySince(ctx context.Context, learnerID string, after int64) ([]AttemptRecord, error) {
	return r.query(ctx, learnerID, "", after)
}

func (r *attemptRepo) query(ctx context.Context, learnerID, topicID string, after int64) ([]AttemptRecord, error) {
	q := `SELECT sequence, learner_id, topic_id, difficulty, score, modality, created_at
	      FROM attempts
	      WHERE learner_id = ? AND sequence > ?`
	args := []any{learnerID, after}
	if topicID != "" {
		q += ` AND topic_id = ?`
		args = append(args, topicID)
	}
	q += ` ORDER BY sequence ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &StorageError{Op: "query attempts", Err: err}
	}
	defer rows.Close()

	var records []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		var modality, createdAt string
		err := rows.Scan(&rec.Sequence, &rec.LearnerID, &rec.TopicID,
			&rec.Difficulty, &rec.Score, &modality, &createdAt)
		if err != nil {
			return nil, &StorageError{Op: "scan attempt", Err: err}
		}
		rec.Modality = Modality(modality)
		rec.CreatedAt, err = time.Parse(timeFormat, createdAt)
		if err != nil {
			return nil, &StorageError{Op: "parse attempt timestamp", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate attempts", Err: err}
	}
	return records, nil
}
