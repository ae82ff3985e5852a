// Package provider turns schedule strings from configuration into
// timer.Schedule values.
//
// Supported forms:
//   - Cron (crontab.guru-style): "*/5 * * * *", "0 30 9 * * *", "@hourly", "@every 55m"
//   - Interval duration: "55m", "2h30m"
//   - Interval HH:MM: "00:50" (50 minutes), "02:30" (2 hours 30 minutes)
//   - Daily: "daily:08:00,17:30"
//   - Weekly: "weekly:mon@09:00,fri@17:00"
//
// Optional prefixes:
//   - "cron:" forces cron parsing
//   - "interval:" or "every:" forces interval parsing
package provider

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"timerctl/internal/timer"
)

// SpecKind describes the normalized kind of a schedule string.
type SpecKind int

const (
	SpecCron SpecKind = iota
	SpecInterval
	SpecDaily
	SpecWeekly
)

func (k SpecKind) String() string {
	switch k {
	case SpecCron:
		return "cron"
	case SpecInterval:
		return "interval"
	case SpecDaily:
		return "daily"
	case SpecWeekly:
		return "weekly"
	default:
		return "unknown"
	}
}

// ParsedSpec is a schedule string broken into its parts. Only the fields
// matching Kind are set.
type ParsedSpec struct {
	Kind   SpecKind
	Cron   string
	Every  time.Duration
	Times  []timer.TimeOfDay
	Weekly []timer.WeeklyOccurrence
	Source string // "cron" | "duration" | "hhmm" | "daily" | "weekly"
}

var reHHMM = regexp.MustCompile(`^\s*(\d{1,3}):(\d{2})\s*$`)

// ParseSpec classifies raw without building a schedule.
func ParseSpec(raw string) (ParsedSpec, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParsedSpec{}, fmt.Errorf("schedule required")
	}

	prefix, rest, hasPrefix := strings.Cut(s, ":")
	if hasPrefix {
		rest = strings.TrimSpace(rest)
		switch strings.ToLower(strings.TrimSpace(prefix)) {
		case "cron":
			if rest == "" {
				return ParsedSpec{}, fmt.Errorf("cron schedule required after 'cron:'")
			}
			return ParsedSpec{Kind: SpecCron, Cron: rest, Source: "cron"}, nil
		case "interval", "every":
			d, src, err := parseInterval(rest)
			if err != nil {
				return ParsedSpec{}, err
			}
			return ParsedSpec{Kind: SpecInterval, Every: d, Source: src}, nil
		case "daily":
			times, err := parseDailyList(rest)
			if err != nil {
				return ParsedSpec{}, err
			}
			return ParsedSpec{Kind: SpecDaily, Times: times, Source: "daily"}, nil
		case "weekly":
			slots, err := parseWeeklyList(rest)
			if err != nil {
				return ParsedSpec{}, err
			}
			return ParsedSpec{Kind: SpecWeekly, Weekly: slots, Source: "weekly"}, nil
		}
	}

	// Whitespace or a leading '@' means cron; CRON_TZ= prefixed specs too.
	if strings.ContainsAny(s, " \t\n\r") || strings.HasPrefix(s, "@") {
		return ParsedSpec{Kind: SpecCron, Cron: s, Source: "cron"}, nil
	}

	if reHHMM.MatchString(s) {
		d, err := parseHHMMDuration(s)
		if err != nil {
			return ParsedSpec{}, err
		}
		return ParsedSpec{Kind: SpecInterval, Every: d, Source: "hhmm"}, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return ParsedSpec{}, fmt.Errorf("interval must be > 0")
		}
		return ParsedSpec{Kind: SpecInterval, Every: d, Source: "duration"}, nil
	}

	return ParsedSpec{}, fmt.Errorf(
		"invalid schedule %q (use cron like '*/5 * * * *', HH:MM like '02:30', duration like '55m', 'daily:08:00' or 'weekly:mon@09:00')",
		raw,
	)
}

// Parse builds a schedule from raw. Calendar kinds (cron, daily, weekly) are
// evaluated in loc; intervals tick on whole multiples since the Unix epoch.
func Parse(raw string, loc *time.Location) (timer.Schedule, error) {
	ps, err := ParseSpec(raw)
	if err != nil {
		return nil, err
	}
	return ps.Build(loc, time.Time{})
}

// Build creates the schedule described by ps. anchor only applies to
// intervals; zero keeps the epoch alignment.
func (ps ParsedSpec) Build(loc *time.Location, anchor time.Time) (timer.Schedule, error) {
	var (
		s   timer.Schedule
		err error
	)
	switch ps.Kind {
	case SpecCron:
		s, err = timer.NewCron(ps.Cron, loc)
	case SpecInterval:
		s, err = timer.NewConstant(ps.Every, anchor)
	case SpecDaily:
		s, err = timer.NewDaily(loc, ps.Times...)
	case SpecWeekly:
		s, err = timer.NewWeekly(loc, ps.Weekly...)
	default:
		return nil, fmt.Errorf("unsupported schedule kind %d", int(ps.Kind))
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parseInterval(v string) (time.Duration, string, error) {
	if v == "" {
		return 0, "", fmt.Errorf("interval required")
	}
	if reHHMM.MatchString(v) {
		d, err := parseHHMMDuration(v)
		return d, "hhmm", err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, "", fmt.Errorf("invalid interval %q (use HH:MM or Go duration like '55m'/'2h30m')", v)
	}
	if d <= 0 {
		return 0, "", fmt.Errorf("interval must be > 0")
	}
	return d, "duration", nil
}

// parseHHMMDuration reads "HHH:MM" as a duration; hours up to 999.
func parseHHMMDuration(v string) (time.Duration, error) {
	m := reHHMM.FindStringSubmatch(v)
	if len(m) != 3 {
		return 0, fmt.Errorf("invalid HH:MM %q", v)
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if mm > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", v)
	}
	d := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
	if d <= 0 {
		return 0, fmt.Errorf("interval must be > 0")
	}
	return d, nil
}

func parseDailyList(v string) ([]timer.TimeOfDay, error) {
	if v == "" {
		return nil, fmt.Errorf("daily schedule needs at least one HH:MM")
	}
	var out []timer.TimeOfDay
	for _, item := range strings.Split(v, ",") {
		tod, err := timer.ParseTimeOfDay(item)
		if err != nil {
			return nil, err
		}
		out = append(out, tod)
	}
	return out, nil
}

func parseWeeklyList(v string) ([]timer.WeeklyOccurrence, error) {
	if v == "" {
		return nil, fmt.Errorf("weekly schedule needs at least one day@HH:MM")
	}
	var out []timer.WeeklyOccurrence
	for _, item := range strings.Split(v, ",") {
		dayStr, atStr, ok := strings.Cut(strings.TrimSpace(item), "@")
		if !ok {
			return nil, fmt.Errorf("invalid weekly slot %q, expected day@HH:MM", item)
		}
		day, err := parseWeekday(dayStr)
		if err != nil {
			return nil, err
		}
		at, err := timer.ParseTimeOfDay(atStr)
		if err != nil {
			return nil, err
		}
		out = append(out, timer.WeeklyOccurrence{Weekday: day, At: at})
	}
	return out, nil
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := weekdays[s]; ok {
		return d, nil
	}
	// cron numbering, Sunday=0
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}
