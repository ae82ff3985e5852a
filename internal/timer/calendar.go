package timer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: invalid time of day %q, expected HH:MM or HH:MM:SS", ErrInvalidArgument, s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: invalid time of day %q", ErrInvalidArgument, s)
		}
		vals[i] = v
	}
	tod := TimeOfDay{Hour: vals[0], Minute: vals[1], Second: vals[2]}
	if err := tod.validate(); err != nil {
		return TimeOfDay{}, err
	}
	return tod, nil
}

func (d TimeOfDay) validate() error {
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 || d.Second < 0 || d.Second > 59 {
		return fmt.Errorf("%w: time of day %02d:%02d:%02d out of range", ErrInvalidArgument, d.Hour, d.Minute, d.Second)
	}
	return nil
}

func (d TimeOfDay) seconds() int { return d.Hour*3600 + d.Minute*60 + d.Second }

// on returns the instant of d on the given calendar day in loc.
func (d TimeOfDay) on(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, d.Hour, d.Minute, d.Second, 0, loc)
}

func (d TimeOfDay) String() string {
	if d.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", d.Hour, d.Minute, d.Second)
	}
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

func sortTimes(times []TimeOfDay) {
	sort.Slice(times, func(i, j int) bool { return times[i].seconds() < times[j].seconds() })
}

// Daily fires at each listed time of day, every day, in its location.
type Daily struct {
	times []TimeOfDay
	loc   *time.Location
}

// NewDaily creates a Daily schedule. A nil loc means time.Local.
func NewDaily(loc *time.Location, times ...TimeOfDay) (Daily, error) {
	if len(times) == 0 {
		return Daily{}, fmt.Errorf("%w: daily schedule needs at least one time", ErrInvalidArgument)
	}
	cp := make([]TimeOfDay, len(times))
	for i, t := range times {
		if err := t.validate(); err != nil {
			return Daily{}, err
		}
		cp[i] = t
	}
	sortTimes(cp)
	if loc == nil {
		loc = time.Local
	}
	return Daily{times: cp, loc: loc}, nil
}

func (d Daily) NextOccurrences(count int, from time.Time) ([]time.Time, error) {
	if len(d.times) == 0 {
		return nil, fmt.Errorf("%w: daily schedule has no times", ErrInvalidSchedule)
	}
	return collect(count, from, d.next)
}

func (d Daily) next(t time.Time) time.Time {
	lt := t.In(d.loc)
	// Two days always cover the next slot; the third absorbs DST shifts.
	for off := 0; off < 3; off++ {
		var best time.Time
		for _, tod := range d.times {
			best = earliestAfter(best, tod.on(lt.Year(), lt.Month(), lt.Day()+off, d.loc), t)
		}
		if !best.IsZero() {
			return best.In(t.Location())
		}
	}
	return time.Time{}
}

// earliestAfter returns the earlier of best and c, ignoring c unless it is
// after t. Slots sorted by wall clock can fall out of order on days where a
// gap pushes a nonexistent time forward, so every slot of a day is checked.
func earliestAfter(best, c, t time.Time) time.Time {
	if !c.After(t) {
		return best
	}
	if best.IsZero() || c.Before(best) {
		return c
	}
	return best
}

func (d Daily) String() string {
	parts := make([]string, len(d.times))
	for i, t := range d.times {
		parts[i] = t.String()
	}
	return "Daily: " + strings.Join(parts, ",")
}

// WeeklyOccurrence is one weekly slot.
type WeeklyOccurrence struct {
	Weekday time.Weekday
	At      TimeOfDay
}

func (w WeeklyOccurrence) String() string {
	return strings.ToLower(w.Weekday.String()[:3]) + "@" + w.At.String()
}

// Weekly fires at each listed (weekday, time of day) slot, every week.
type Weekly struct {
	slots []WeeklyOccurrence
	loc   *time.Location
}

// NewWeekly creates a Weekly schedule. A nil loc means time.Local.
func NewWeekly(loc *time.Location, slots ...WeeklyOccurrence) (Weekly, error) {
	if len(slots) == 0 {
		return Weekly{}, fmt.Errorf("%w: weekly schedule needs at least one slot", ErrInvalidArgument)
	}
	cp := make([]WeeklyOccurrence, len(slots))
	for i, s := range slots {
		if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
			return Weekly{}, fmt.Errorf("%w: weekday %d out of range", ErrInvalidArgument, int(s.Weekday))
		}
		if err := s.At.validate(); err != nil {
			return Weekly{}, err
		}
		cp[i] = s
	}
	sort.Slice(cp, func(i, j int) bool {
		if cp[i].Weekday != cp[j].Weekday {
			return cp[i].Weekday < cp[j].Weekday
		}
		return cp[i].At.seconds() < cp[j].At.seconds()
	})
	if loc == nil {
		loc = time.Local
	}
	return Weekly{slots: cp, loc: loc}, nil
}

func (w Weekly) NextOccurrences(count int, from time.Time) ([]time.Time, error) {
	if len(w.slots) == 0 {
		return nil, fmt.Errorf("%w: weekly schedule has no slots", ErrInvalidSchedule)
	}
	return collect(count, from, w.next)
}

func (w Weekly) next(t time.Time) time.Time {
	lt := t.In(w.loc)
	for off := 0; off < 9; off++ {
		day := time.Date(lt.Year(), lt.Month(), lt.Day()+off, 12, 0, 0, 0, w.loc)
		var best time.Time
		for _, s := range w.slots {
			if s.Weekday != day.Weekday() {
				continue
			}
			best = earliestAfter(best, s.At.on(day.Year(), day.Month(), day.Day(), w.loc), t)
		}
		if !best.IsZero() {
			return best.In(t.Location())
		}
	}
	return time.Time{}
}

func (w Weekly) String() string {
	parts := make([]string, len(w.slots))
	for i, s := range w.slots {
		parts[i] = s.String()
	}
	return "Weekly: " + strings.Join(parts, ",")
}
