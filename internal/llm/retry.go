package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff.
// Schema violations get exactly one retry; truncation and context errors
// get none.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with retry middleware.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	var invalidOnce bool

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := r.pause(ctx, attempt-1, lastErr); err != nil {
				return nil, err
			}
		}

		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err, &invalidOnce) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies an error. invalidOnce tracks the single retry a
// schema violation is allowed, in case the model self-corrects.
func retryable(err error, invalidOnce *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Truncation repeats deterministically under the same cap.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidOnce {
			return false
		}
		*invalidOnce = true
		return true
	}

	// Rate limits, 5xx, and raw network errors are all transient.
	return true
}

// pause sleeps out the backoff for the given completed attempt, cutting
// the wait short if the context ends first.
func (r *RetryProvider) pause(ctx context.Context, attempt int, err error) error {
	timer := time.NewTimer(r.wait(attempt, err))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// wait computes the backoff: the provider's RetryAfter when it gave one,
// otherwise capped exponential growth with ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	w := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	if w > float64(r.cfg.MaxWait) {
		w = float64(r.cfg.MaxWait)
	}
	w += w * 0.2 * (2*rand.Float64() - 1)
	if w < 0 {
		w = 0
	}
	return time.Duration(w)
}
