// Package threads decides how many threads FastQC gets.
package threads

import (
	"errors"
	"fmt"
)

// ErrOversubscribed is a warning: more threads were requested than the host
// can schedule, and the count was clamped.
var ErrOversubscribed = errors.New("too many threads requested")

// Resolve returns the thread count to use. A requested value of 0 or less
// means the lesser of jobs and available, but at least 1. A request above
// available is clamped to available and reported with ErrOversubscribed; the
// returned count is usable either way.
func Resolve(requested, jobs, available int) (int, error) {
	if available < 1 {
		available = 1
	}

	if requested <= 0 {
		n := jobs
		if n > available {
			n = available
		}
		if n < 1 {
			n = 1
		}
		return n, nil
	}

	if requested > available {
		return available, fmt.Errorf("%w: %d requested, maximum available on this machine is %d", ErrOversubscribed, requested, available)
	}

	return requested, nil
}
