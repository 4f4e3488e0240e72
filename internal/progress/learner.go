package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Learner is a registered learner. Multiple learners share one database;
// every log and snapshot row is keyed by learner ID.
type Learner struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// GetOrCreateLearner returns the learner with the given name, creating it
// on first use.
func (s *Store) GetOrCreateLearner(ctx context.Context, name string) (*Learner, error) {
	if name == "" {
		return nil, fmt.Errorf("learner name is empty")
	}

	l, err := s.learnerByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if l != nil {
		return l, nil
	}

	l = &Learner{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO learners (id, name, created_at) VALUES (?, ?, ?)`,
		l.ID, l.Name, l.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		// A concurrent create for the same name loses the race on the
		// UNIQUE constraint; re-read rather than fail.
		if existing, lookupErr := s.learnerByName(ctx, name); lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, &StorageError{Op: "create learner", Err: err}
	}
	return l, nil
}

func (s *Store) learnerByName(ctx context.Context, name string) (*Learner, error) {
	var l Learner
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM learners WHERE name = ?`, name,
	).Scan(&l.ID, &l.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "lookup learner", Err: err}
	}
	l.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, &StorageError{Op: "parse learner timestamp", Err: err}
	}
	return &l, nil
}

// Learners returns all registered learners, oldest first.
func (s *Store) Learners(ctx context.Context) ([]Learner, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM learners ORDER BY created_at ASC`)
	if err != nil {
		return nil, &StorageError{Op: "list learners", Err: err}
	}
	defer rows.Close()

	var learners []Learner
	for rows.Next() {
		var l Learner
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Name, &createdAt); err != nil {
			return nil, &StorageError{Op: "scan learner", Err: err}
		}
		l.CreatedAt, err = time.Parse(timeFormat, createdAt)
		if err != nil {
			return nil, &StorageError{Op: "parse learner timestamp", Err: err}
		}
		learners = append(learners, l)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate learners", Err: err}
	}
	return learners, nil
}

// Reset removes the learner's entire attempt history and snapshot.
// The learner row and the LLM request log survive. Destructive and
// irreversible; callers are expected to confirm first.
func (s *Store) Reset(ctx context.Context, learnerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "begin reset", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attempts WHERE learner_id = ?`, learnerID); err != nil {
		return &StorageError{Op: "reset attempts", Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE learner_id = ?`, learnerID); err != nil {
		return &StorageError{Op: "reset snapshot", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "commit reset", Err: err}
	}
	return nil
}

// TopicStats aggregates a learner's attempts for one topic.
type TopicStats struct {
	TopicID   string
	Attempts  int
	MeanScore float64
	LastAt    time.Time
}

// StatsByTopic returns per-topic aggregates for a learner, ordered by
// topic ID.
func (s *Store) StatsByTopic(ctx context.Context, learnerID string) ([]TopicStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT topic_id, COUNT(*), AVG(score), MAX(created_at)
		 FROM attempts
		 WHERE learner_id = ?
		 GROUP BY topic_id
		 ORDER BY topic_id ASC`,
		learnerID,
	)
	if err != nil {
		return nil, &StorageError{Op: "query topic stats", Err: err}
	}
	defer rows.Close()

	var stats []TopicStats
	for rows.Next() {
		var st TopicStats
		var lastAt string
		if err := rows.Scan(&st.TopicID, &st.Attempts, &st.MeanScore, &lastAt); err != nil {
			return nil, &StorageError{Op: "scan topic stats", Err: err}
		}
		st.LastAt, err = time.Parse(timeFormat, lastAt)
		if err != nil {
			return nil, &StorageError{Op: "parse stats timestamp", Err: err}
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate topic stats", Err: err}
	}
	return stats, nil
}
