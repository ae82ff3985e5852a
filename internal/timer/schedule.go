package timer

import (
	"fmt"
	"time"
)

// Schedule is a recurrence rule able to enumerate its own future occurrences.
//
// NextOccurrences returns at most count instants strictly after from, in
// ascending order. A zero from means "now". A negative count fails with
// ErrInvalidArgument. A schedule that runs out of occurrences (an end date, a
// cron rule that never matches) returns fewer than count results and no error.
//
// Implementations are immutable and safe for concurrent use.
type Schedule interface {
	NextOccurrences(count int, from time.Time) ([]time.Time, error)
	String() string
}

// maxPrealloc caps the up-front allocation for large counts; the slice still
// grows to count when the schedule keeps producing.
const maxPrealloc = 64

// nextFunc returns the first occurrence strictly after t, or the zero time
// when the rule has no further occurrences.
type nextFunc func(t time.Time) time.Time

// collect walks next from the effective start until it has count results or
// the rule stops making progress.
func collect(count int, from time.Time, next nextFunc) ([]time.Time, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidArgument, count)
	}
	if from.IsZero() {
		from = time.Now()
	}
	out := make([]time.Time, 0, min(count, maxPrealloc))
	t := from
	for len(out) < count {
		n := next(t)
		if n.IsZero() || !n.After(t) {
			break
		}
		out = append(out, n)
		t = n
	}
	return out, nil
}

// NextOccurrences calls s.NextOccurrences after checking s for nil. It is the
// entry point for callers holding a Schedule they did not construct.
func NextOccurrences(s Schedule, count int, from time.Time) ([]time.Time, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: schedule is nil", ErrInvalidArgument)
	}
	return s.NextOccurrences(count, from)
}
