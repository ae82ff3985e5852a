package timer

import "errors"

var (
	// ErrInvalidArgument reports a programmer error at the call site: a nil
	// schedule, a negative occurrence count or an out-of-range rule value.
	ErrInvalidArgument = errors.New("timer: invalid argument")

	// ErrInvalidSchedule reports a rule that cannot describe any schedule,
	// e.g. a cron expression rejected by the parser.
	ErrInvalidSchedule = errors.New("timer: invalid schedule")
)
