package timer

import (
	"fmt"
	"time"
)

// Bounded clips a base schedule at an end instant. Occurrences at end are
// still produced; later ones are not, so once end has passed the schedule is
// exhausted and returns no occurrences.
type Bounded struct {
	base Schedule
	end  time.Time
}

// NewBounded wraps base so it stops producing after end.
func NewBounded(base Schedule, end time.Time) (Bounded, error) {
	if base == nil {
		return Bounded{}, fmt.Errorf("%w: base schedule is nil", ErrInvalidArgument)
	}
	if end.IsZero() {
		return Bounded{}, fmt.Errorf("%w: end time required", ErrInvalidArgument)
	}
	return Bounded{base: base, end: end}, nil
}

// End returns the last instant an occurrence may fall on.
func (b Bounded) End() time.Time { return b.end }

// Base returns the wrapped schedule.
func (b Bounded) Base() Schedule { return b.base }

func (b Bounded) NextOccurrences(count int, from time.Time) ([]time.Time, error) {
	if b.base == nil {
		return nil, fmt.Errorf("%w: bounded schedule has no base", ErrInvalidSchedule)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must be >= 0, got %d", ErrInvalidArgument, count)
	}
	if from.IsZero() {
		from = time.Now()
	}
	if !from.Before(b.end) {
		return []time.Time{}, nil
	}
	occ, err := b.base.NextOccurrences(count, from)
	if err != nil {
		return nil, err
	}
	for i, t := range occ {
		if t.After(b.end) {
			return occ[:i], nil
		}
	}
	return occ, nil
}

func (b Bounded) String() string {
	return fmt.Sprintf("%s (until %s)", b.base, b.end.Format(time.RFC3339))
}
