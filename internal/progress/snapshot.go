package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (learner_id, sequence, data, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (learner_id) DO UPDATE SET
		   sequence = excluded.sequence,
		   data = excluded.data,
		   created_at = excluded.created_at`,
		snap.LearnerID, snap.Sequence, string(snap.Data), now.Format(timeFormat),
	)
	if err != nil {
		return &StorageError{Op: "save snapshot", Err: err}
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, learnerID string) (*Snapshot, error) {
	var snap Snapshot
	var data, createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT learner_id, sequence, data, created_at FROM snapshots WHERE learner_id = ?`,
		learnerID,
	).Scan(&snap.LearnerID, &snap.Sequence, &data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load snapshot", Err: err}
	}
	snap.Data = []byte(data)
	snap.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, &StorageError{Op: "parse snapshot timestamp", Err: err}
	}
	return &snap, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, learnerID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE learner_id = ?`, learnerID)
	if err != nil {
		return &StorageError{Op: "delete snapshot", Err: err}
	}
	return nil
}
