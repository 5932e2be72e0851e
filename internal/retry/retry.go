// Package retry holds the close-code/status-code classification and delay
// sequencing shared by the HTTP retry helper (internal/httpx) and the
// WebSocket reconnect policy (internal/wsconn).
package retry

import (
	"time"

	"github.com/cenkalti/backoff"
)

// CodeRange matches a single integer code or an inclusive [Low, High] range.
// A CodeRange{5, 5} matches only 5.
type CodeRange struct {
	Low  int
	High int
}

// Code returns a CodeRange that matches exactly one code.
func Code(c int) CodeRange {
	return CodeRange{Low: c, High: c}
}

// Contains reports whether code falls within the range.
func (r CodeRange) Contains(code int) bool {
	return code >= r.Low && code <= r.High
}

// MatchesAny reports whether code matches any of ranges. An empty or nil
// ranges slice matches nothing.
func MatchesAny(code int, ranges []CodeRange) bool {
	for _, r := range ranges {
		if r.Contains(code) {
			return true
		}
	}
	return false
}

// DelayFunc computes the delay to sleep before the given 1-based attempt.
type DelayFunc func(attempt int) time.Duration

// ExponentialDelay builds a DelayFunc from an exponential backoff with the
// given initial interval and cap, matching min(initial*2^(n-1), max). It is
// deterministic (no jitter) so callers can assert on exact delays in tests.
func ExponentialDelay(initial, max time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = initial
		b.MaxInterval = max
		b.Multiplier = 2
		b.RandomizationFactor = 0
		b.Reset()

		var d time.Duration
		for i := 0; i < attempt; i++ {
			d = b.NextBackOff()
		}
		if d > max {
			d = max
		}
		return d
	}
}
