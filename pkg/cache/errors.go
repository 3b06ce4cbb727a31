package cache

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/starmap/pkg/httputil"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// RetryableError marks an error as transient.
type RetryableError = httputil.RetryableError

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error { return httputil.Retryable(err) }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool { return httputil.IsRetryable(err) }

// retryDelay is the first backoff interval; it doubles per attempt.
var retryDelay = time.Second

// RetryWithBackoff calls fn up to three times, backing off between attempts.
// Only Retryable errors are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, 3, retryDelay, fn)
}
