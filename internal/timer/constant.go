package timer

import (
	"fmt"
	"math"
	"time"
)

const maxDuration = time.Duration(math.MaxInt64)

// Constant ticks every interval since anchor.
type Constant struct {
	interval time.Duration
	anchor   time.Time
}

// NewConstant creates a Constant schedule. A zero anchor anchors the schedule
// at the Unix epoch, so ticks fall on whole multiples of interval.
func NewConstant(interval time.Duration, anchor time.Time) (Constant, error) {
	if interval <= 0 {
		return Constant{}, fmt.Errorf("%w: interval must be > 0, got %s", ErrInvalidArgument, interval)
	}
	if anchor.IsZero() {
		anchor = time.Unix(0, 0).UTC()
	}
	return Constant{interval: interval, anchor: anchor}, nil
}

// Interval returns the tick period.
func (c Constant) Interval() time.Duration { return c.interval }

// Anchor returns the instant the ticks are aligned to.
func (c Constant) Anchor() time.Time { return c.anchor }

func (c Constant) NextOccurrences(count int, from time.Time) ([]time.Time, error) {
	if c.interval <= 0 {
		return nil, fmt.Errorf("%w: constant schedule has no interval", ErrInvalidSchedule)
	}
	return collect(count, from, c.next)
}

// next jumps straight to the first tick after t instead of stepping forward
// from the anchor.
func (c Constant) next(t time.Time) time.Time {
	if t.Before(c.anchor) {
		return c.anchor.In(t.Location())
	}
	base := c.anchor
	for {
		d := t.Sub(base)
		if d < maxDuration {
			return base.Add(d / c.interval * c.interval).Add(c.interval).In(t.Location())
		}
		// Sub saturated; move the base closer in whole intervals.
		base = base.Add(maxDuration / c.interval * c.interval)
	}
}

func (c Constant) String() string {
	return fmt.Sprintf("Constant: %s", c.interval)
}
