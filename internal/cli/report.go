package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"timerctl/internal/config"
	"timerctl/internal/timer"
	"timerctl/internal/timer/provider"
	logx "timerctl/pkg/logx"
)

type entry struct {
	name  string
	sched timer.Schedule
}

// buildEntries builds the configured schedules, keeping only names when given.
func buildEntries(cfg *config.Config, names []string) ([]entry, *time.Location, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	defs, err := cfg.Definitions()
	if err != nil {
		return nil, nil, err
	}

	filter := len(names) > 0
	want := map[string]bool{}
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}

	out := make([]entry, 0, len(defs))
	for _, d := range defs {
		if filter && !want[d.Name] {
			continue
		}
		s, err := provider.Build(d, loc)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, entry{name: d.Name, sched: s})
		delete(want, d.Name)
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, nil, fmt.Errorf("unknown schedule %s", strings.Join(unknown, ", "))
	}
	return out, loc, nil
}

// reportOptions describe one rendering pass.
type reportOptions struct {
	count int
	from  time.Time // zero means now
	last  time.Time // previous expected firing; zero skips the past-due check
}

// writeReport prints one block per schedule: a title line with the run
// context, then the occurrence report.
func writeReport(w io.Writer, log logx.Logger, entries []entry, loc *time.Location, opt reportOptions) error {
	from := opt.from
	if from.IsZero() {
		from = time.Now()
	}
	from = from.In(loc)

	for _, e := range entries {
		rc, err := timer.NewRunContext(e.sched)
		if err != nil {
			return fmt.Errorf("schedule %q: %w", e.name, err)
		}
		if !opt.last.IsZero() {
			rc.IsPastDue, err = isPastDue(e.sched, opt.last, from)
			if err != nil {
				return fmt.Errorf("schedule %q: %w", e.name, err)
			}
		}

		text, err := rc.FormatNextOccurrences(opt.count, from)
		if err != nil {
			log.Error("format occurrences failed", logx.String("name", e.name), logx.Err(err))
			return fmt.Errorf("schedule %q: %w", e.name, err)
		}
		log.Debug("schedule evaluated",
			logx.String("name", e.name),
			logx.String("schedule", e.sched.String()),
			logx.Bool("past_due", rc.IsPastDue),
			logx.Time("from", from),
		)
		if _, err := fmt.Fprintf(w, "== %s: %s ==\n%s", e.name, rc, text); err != nil {
			return err
		}
	}
	return nil
}

// isPastDue reports whether the first occurrence after last should already
// have fired by now. This is the dispatcher's check; the timer core only
// carries the result.
func isPastDue(s timer.Schedule, last, now time.Time) (bool, error) {
	occ, err := s.NextOccurrences(1, last)
	if err != nil {
		return false, err
	}
	return len(occ) == 1 && occ[0].Before(now), nil
}
