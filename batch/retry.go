package batch

import (
	"context"
	"time"

	"github.com/fwojciec/domsift"
)

// DefaultRetryDelays returns the backoff delays between URL load attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// retryable reports whether a load error may succeed on another attempt.
// Missing files and rejected input fail the same way every time.
func retryable(err error) bool {
	switch domsift.ErrorCode(err) {
	case domsift.ENOTFOUND, domsift.EINVALID:
		return false
	}
	return true
}

// loadWithRetry calls load once plus once per delay until it succeeds,
// returns a permanent error, or ctx ends.
func loadWithRetry(ctx context.Context, delays []time.Duration, load func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := load(ctx)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if attempt == len(delays) || !retryable(err) {
			break
		}

		t := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-t.C:
		}
	}
	return "", lastErr
}
