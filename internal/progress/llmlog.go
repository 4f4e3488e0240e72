package progress

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type requestLog struct {
	db *sql.DB
}

func (r *requestLog) AppendLLMRequest(ctx context.Context, data LLMRequestData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		   (provider, model, purpose, input_tokens, output_tokens, latency_ms,
		    success, error_message, request_body, response_body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return &StorageError{Op: "append llm request", Err: err}
	}
	return nil
}

func (r *requestLog) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequest, error) {
	q := `SELECT id, provider, model, purpose, input_tokens, output_tokens,
	             latency_ms, success, error_message, request_body, response_body, created_at
	      FROM llm_requests ORDER BY id DESC`
	args := []any{}
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &StorageError{Op: "query llm requests", Err: err}
	}
	defer rows.Close()

	var requests []LLMRequest
	for rows.Next() {
		req, err := scanLLMRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate llm requests", Err: err}
	}
	return requests, nil
}

func (r *requestLog) GetLLMRequest(ctx context.Context, id int) (*LLMRequest, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, provider, model, purpose, input_tokens, output_tokens,
		        latency_ms, success, error_message, request_body, response_body, created_at
		 FROM llm_requests WHERE id = ?`, id)

	req, err := scanLLMRequest(row.Scan)
	if err != nil {
		var serr *StorageError
		if errors.As(err, &serr) && errors.Is(serr.Err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func scanLLMRequest(scan func(...any) error) (*LLMRequest, error) {
	var req LLMRequest
	var createdAt string
	err := scan(&req.ID, &req.Provider, &req.Model, &req.Purpose,
		&req.InputTokens, &req.OutputTokens, &req.LatencyMs,
		&req.Success, &req.ErrorMessage, &req.RequestBody, &req.ResponseBody,
		&createdAt)
	if err != nil {
		return nil, &StorageError{Op: "scan llm request", Err: err}
	}
	req.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, &StorageError{Op: "parse llm request timestamp", Err: err}
	}
	return &req, nil
}

func (r *requestLog) UsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), COALESCE(SUM(input_tokens), 0),
		        COALESCE(SUM(output_tokens), 0), COALESCE(AVG(latency_ms), 0)
		 FROM llm_requests
		 GROUP BY purpose
		 ORDER BY purpose ASC`)
	if err != nil {
		return nil, &StorageError{Op: "query usage by purpose", Err: err}
	}
	defer rows.Close()

	var usage []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		var avgLatency float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avgLatency); err != nil {
			return nil, &StorageError{Op: "scan usage by purpose", Err: err}
		}
		u.AvgLatencyMs = int64(avgLatency)
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate usage by purpose", Err: err}
	}
	return usage, nil
}

func (r *requestLog) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0),
		        COALESCE(SUM(output_tokens), 0)
		 FROM llm_requests
		 GROUP BY model
		 ORDER BY model ASC`)
	if err != nil {
		return nil, &StorageError{Op: "query usage by model", Err: err}
	}
	defer rows.Close()

	var usage []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, &StorageError{Op: "scan usage by model", Err: err}
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate usage by model", Err: err}
	}
	return usage, nil
}
