package timer

import (
	"fmt"
	"strings"
	"time"
)

// OccurrenceLayout is the timestamp layout used by FormatNextOccurrences.
// Log parsers depend on it; keep it stable.
const OccurrenceLayout = "2006-01-02 15:04:05 -07:00"

// RunContext is handed to a scheduled task for one firing.
//
// The dispatcher creates it right before invoking the task and may set
// IsPastDue. All writes must happen before the context is shared with other
// goroutines; after that it is read-only. Nothing here synchronizes writers.
type RunContext struct {
	schedule Schedule

	// IsPastDue reports that this firing is being processed later than its
	// scheduled instant.
	IsPastDue bool
}

// NewRunContext creates a RunContext borrowing s. IsPastDue starts false.
func NewRunContext(s Schedule) (*RunContext, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: schedule is nil", ErrInvalidArgument)
	}
	return &RunContext{schedule: s}, nil
}

// Schedule returns the schedule this firing belongs to.
func (rc *RunContext) Schedule() Schedule { return rc.schedule }

// FormatNextOccurrences renders the next count occurrences after now (zero
// now means the current time) as a loggable multi-line string.
func (rc *RunContext) FormatNextOccurrences(count int, now time.Time) (string, error) {
	return FormatNextOccurrences(rc.schedule, count, now)
}

func (rc *RunContext) String() string {
	if rc.schedule == nil {
		return fmt.Sprintf("schedule=<nil> past_due=%t", rc.IsPastDue)
	}
	return fmt.Sprintf("schedule=%q past_due=%t", rc.schedule.String(), rc.IsPastDue)
}

// FormatNextOccurrences renders a header line announcing count occurrences,
// then one OccurrenceLayout timestamp per line. Every line ends with "\n".
// A count of 0 yields the header alone. Errors from s are returned as is.
func FormatNextOccurrences(s Schedule, count int, now time.Time) (string, error) {
	occ, err := NextOccurrences(s, count, now)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The next %d occurrences of the schedule will be:\n", count)
	for _, t := range occ {
		b.WriteString(t.Format(OccurrenceLayout))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
