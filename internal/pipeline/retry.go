package pipeline

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/dgallion1/stxdoc/internal/pathstore"
)

// IsRetryable reports whether a publish error is transient.
func IsRetryable(err error) bool {
	var retryErr *pathstore.RetryableError
	return errors.As(err, &retryErr)
}

// publishRetry bounds how a document publish is retried against pathstore.
type publishRetry struct {
	attempts int
	base     time.Duration
	max      time.Duration
}

var defaultPublishRetry = publishRetry{
	attempts: 3,
	base:     500 * time.Millisecond,
	max:      8 * time.Second,
}

// delay returns the wait after failed attempt n (0-indexed), with up to 50%
// jitter. Rate-limited responses wait twice as long as other failures.
func (p publishRetry) delay(attempt int, err error) time.Duration {
	d := p.base << uint(attempt)
	var retryErr *pathstore.RetryableError
	if errors.As(err, &retryErr) && retryErr.StatusCode == http.StatusTooManyRequests {
		d *= 2
	}
	if d > p.max || d < 0 {
		d = p.max
	}
	if d <= 0 {
		return 0
	}
	return d + time.Duration(rand.Int64N(int64(d)/2+1))
}
