package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts both 5-field and 6-field (with seconds) specs, plus
// descriptors like "@hourly" and "@every 55m".
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Cron fires according to a cron expression.
//
// Rules that match nothing within the parser's search horizon (five years)
// are treated as exhausted, so NextOccurrences stays bounded for sparse rules
// such as "0 0 30 2 *".
type Cron struct {
	expr  string
	sched cron.Schedule
}

// NewCron parses expr. Unless expr carries its own CRON_TZ=/TZ= prefix, it is
// evaluated in loc (nil means time.Local).
func NewCron(expr string, loc *time.Location) (Cron, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Cron{}, fmt.Errorf("%w: cron expression required", ErrInvalidSchedule)
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return Cron{}, fmt.Errorf("%w: cron %q: %v", ErrInvalidSchedule, expr, err)
	}
	if spec, ok := sched.(*cron.SpecSchedule); ok && loc != nil && !hasTZPrefix(expr) {
		spec.Location = loc
	}
	return Cron{expr: expr, sched: sched}, nil
}

func hasTZPrefix(expr string) bool {
	return strings.HasPrefix(expr, "CRON_TZ=") || strings.HasPrefix(expr, "TZ=")
}

// Expr returns the cron expression as given.
func (c Cron) Expr() string { return c.expr }

func (c Cron) NextOccurrences(count int, from time.Time) ([]time.Time, error) {
	if c.sched == nil {
		return nil, fmt.Errorf("%w: cron schedule not initialized", ErrInvalidSchedule)
	}
	return collect(count, from, c.sched.Next)
}

func (c Cron) String() string { return c.expr }
