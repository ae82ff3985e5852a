package provider

import (
	"errors"
	"testing"
	"time"

	"timerctl/internal/timer"
)

func TestParseSpecVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		raw      string
		kind     SpecKind
		source   string
		duration time.Duration
	}{
		{name: "cron", raw: "*/5 * * * *", kind: SpecCron, source: "cron"},
		{name: "prefixed cron", raw: "cron:0 0 * * *", kind: SpecCron, source: "cron"},
		{name: "descriptor", raw: "@hourly", kind: SpecCron, source: "cron"},
		{name: "duration", raw: "10m", kind: SpecInterval, source: "duration", duration: 10 * time.Minute},
		{name: "prefixed interval", raw: "interval:45s", kind: SpecInterval, source: "duration", duration: 45 * time.Second},
		{name: "every prefix", raw: "every:02:00", kind: SpecInterval, source: "hhmm", duration: 2 * time.Hour},
		{name: "hhmm", raw: "01:30", kind: SpecInterval, source: "hhmm", duration: 90 * time.Minute},
		{name: "daily", raw: "daily:08:00,17:30", kind: SpecDaily, source: "daily"},
		{name: "weekly", raw: "Weekly: mon@09:00, fri@17:00", kind: SpecWeekly, source: "weekly"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.raw)
			if err != nil {
				t.Fatalf("ParseSpec(%q) error: %v", tt.raw, err)
			}
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Source != tt.source {
				t.Fatalf("Source = %s, want %s", got.Source, tt.source)
			}
			if tt.kind == SpecInterval && got.Every != tt.duration {
				t.Fatalf("Every = %v, want %v", got.Every, tt.duration)
			}
		})
	}
}

func TestParseSpecInvalid(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{
		"",
		"not-a-schedule",
		"cron:",
		"interval:-5m",
		"00:00",
		"01:75",
		"daily:",
		"daily:25:00",
		"weekly:mon",
		"weekly:someday@09:00",
	} {
		if _, err := ParseSpec(raw); err == nil {
			t.Errorf("ParseSpec(%q) expected error", raw)
		}
	}
}

func TestParseBuildsSchedules(t *testing.T) {
	t.Parallel()
	from := time.Date(2024, 3, 27, 10, 0, 0, 0, time.UTC) // Wednesday
	tests := []struct {
		raw   string
		first time.Time
	}{
		{raw: "0 12 * * *", first: time.Date(2024, 3, 27, 12, 0, 0, 0, time.UTC)},
		{raw: "15m", first: time.Date(2024, 3, 27, 10, 15, 0, 0, time.UTC)},
		{raw: "daily:09:00,18:00", first: time.Date(2024, 3, 27, 18, 0, 0, 0, time.UTC)},
		{raw: "weekly:fri@17:00", first: time.Date(2024, 3, 29, 17, 0, 0, 0, time.UTC)},
		{raw: "weekly:3@11:00", first: time.Date(2024, 3, 27, 11, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		s, err := Parse(tt.raw, time.UTC)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.raw, err)
		}
		occ, err := s.NextOccurrences(1, from)
		if err != nil {
			t.Fatalf("%q: NextOccurrences error: %v", tt.raw, err)
		}
		if len(occ) != 1 || !occ[0].Equal(tt.first) {
			t.Fatalf("%q: first = %v, want %v", tt.raw, occ, tt.first)
		}
	}
}

func TestParseInvalidCron(t *testing.T) {
	t.Parallel()
	s, err := Parse("99 * * * *", time.UTC)
	if !errors.Is(err, timer.ErrInvalidSchedule) {
		t.Fatalf("err = %v, want ErrInvalidSchedule", err)
	}
	if s != nil {
		t.Fatalf("schedule = %v, want nil on error", s)
	}
}

func TestBuildDefinition(t *testing.T) {
	t.Parallel()
	anchor := time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 2, 5, 0, 0, time.UTC)
	s, err := Build(Definition{Name: "poll", Spec: "1h", Anchor: anchor, End: end}, time.UTC)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, ok := s.(timer.Bounded); !ok {
		t.Fatalf("schedule type = %T, want timer.Bounded", s)
	}
	occ, err := s.NextOccurrences(5, anchor)
	if err != nil {
		t.Fatalf("NextOccurrences error: %v", err)
	}
	if len(occ) != 2 {
		t.Fatalf("occurrences = %v, want 2 before end", occ)
	}
	if !occ[1].Equal(end) {
		t.Fatalf("last = %v, want %v", occ[1], end)
	}
}

func TestBuildDefinitionInvalid(t *testing.T) {
	t.Parallel()
	defs := []Definition{
		{Name: "", Spec: "1h"},
		{Name: "bad", Spec: "nope"},
		{Name: "anchored-cron", Spec: "0 * * * *", Anchor: time.Now()},
	}
	for _, d := range defs {
		if _, err := Build(d, time.UTC); err == nil {
			t.Errorf("Build(%+v) expected error", d)
		}
	}
}
