package model

import (
	"fmt"
	"time"
)

// HTTPError is returned by a scraper when a job platform answers with a
// non-success status. The retry layer inspects StatusCode to decide whether
// the scrape is worth another attempt, and RetryAfter carries the platform's
// Retry-After hint when it throttles us.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // zero when the response carried no Retry-After header
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("platform returned HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("platform returned HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
