package timer

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func timeUtc(year, month, day, hour, minute int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
}

func warsaw(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Skipf("Europe/Warsaw not available: %v", err)
	}
	return loc
}

func mustSchedules(t *testing.T) map[string]Schedule {
	t.Helper()
	constant, err := NewConstant(10*time.Minute, timeUtc(2024, 1, 1, 0, 0))
	if err != nil {
		t.Fatalf("NewConstant error: %v", err)
	}
	daily, err := NewDaily(time.UTC, TimeOfDay{Hour: 8}, TimeOfDay{Hour: 17, Minute: 30})
	if err != nil {
		t.Fatalf("NewDaily error: %v", err)
	}
	weekly, err := NewWeekly(time.UTC,
		WeeklyOccurrence{Weekday: time.Monday, At: TimeOfDay{Hour: 9}},
		WeeklyOccurrence{Weekday: time.Friday, At: TimeOfDay{Hour: 17}},
	)
	if err != nil {
		t.Fatalf("NewWeekly error: %v", err)
	}
	cronSched, err := NewCron("*/15 * * * *", time.UTC)
	if err != nil {
		t.Fatalf("NewCron error: %v", err)
	}
	bounded, err := NewBounded(constant, timeUtc(2030, 1, 1, 0, 0))
	if err != nil {
		t.Fatalf("NewBounded error: %v", err)
	}
	return map[string]Schedule{
		"constant": constant,
		"daily":    daily,
		"weekly":   weekly,
		"cron":     cronSched,
		"bounded":  bounded,
	}
}

func TestNextOccurrencesOrdering(t *testing.T) {
	t.Parallel()
	from := timeUtc(2024, 3, 24, 12, 7)
	for name, s := range mustSchedules(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			occ, err := s.NextOccurrences(50, from)
			if err != nil {
				t.Fatalf("NextOccurrences error: %v", err)
			}
			if len(occ) != 50 {
				t.Fatalf("len = %d, want 50", len(occ))
			}
			prev := from
			for i, o := range occ {
				if !o.After(prev) {
					t.Fatalf("occurrence %d = %v, not after %v", i, o, prev)
				}
				prev = o
			}
		})
	}
}

func TestNextOccurrencesNegativeCount(t *testing.T) {
	t.Parallel()
	for name, s := range mustSchedules(t) {
		_, err := s.NextOccurrences(-1, timeUtc(2024, 3, 24, 12, 0))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestNextOccurrencesZeroCount(t *testing.T) {
	t.Parallel()
	for name, s := range mustSchedules(t) {
		occ, err := s.NextOccurrences(0, timeUtc(2024, 3, 24, 12, 0))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if occ == nil || len(occ) != 0 {
			t.Errorf("%s: occ = %v, want empty non-nil slice", name, occ)
		}
	}
}

func TestNextOccurrencesDefaultsToNow(t *testing.T) {
	t.Parallel()
	s, err := NewConstant(time.Hour, time.Time{})
	if err != nil {
		t.Fatalf("NewConstant error: %v", err)
	}
	before := time.Now()
	occ, err := s.NextOccurrences(1, time.Time{})
	after := time.Now()
	if err != nil {
		t.Fatalf("NextOccurrences error: %v", err)
	}
	if len(occ) != 1 {
		t.Fatalf("len = %d, want 1", len(occ))
	}
	if !occ[0].After(before) || occ[0].After(after.Add(time.Hour)) {
		t.Fatalf("occurrence %v outside (%v, %v]", occ[0], before, after.Add(time.Hour))
	}
}

func TestNextOccurrencesNilSchedule(t *testing.T) {
	t.Parallel()
	_, err := NextOccurrences(nil, 3, time.Time{})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestNextOccurrencesConcurrent(t *testing.T) {
	t.Parallel()
	from := timeUtc(2024, 3, 24, 12, 0)
	for name, s := range mustSchedules(t) {
		want, err := s.NextOccurrences(20, from)
		if err != nil {
			t.Fatalf("%s: NextOccurrences error: %v", name, err)
		}
		var wg sync.WaitGroup
		errs := make(chan string, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := s.NextOccurrences(20, from)
				if err != nil || len(got) != len(want) {
					errs <- name
					return
				}
				for j := range got {
					if !got[j].Equal(want[j]) {
						errs <- name
						return
					}
				}
			}()
		}
		wg.Wait()
		close(errs)
		for n := range errs {
			t.Errorf("%s: concurrent result differs", n)
		}
	}
}

func TestConstantNext(t *testing.T) {
	t.Parallel()
	s, err := NewConstant(10*time.Minute, timeUtc(2024, 3, 24, 8, 0))
	if err != nil {
		t.Fatalf("NewConstant error: %v", err)
	}

	data := []struct {
		name string
		from time.Time
		want []time.Time
	}{
		{
			name: "between ticks",
			from: timeUtc(2024, 3, 24, 12, 5),
			want: []time.Time{timeUtc(2024, 3, 24, 12, 10), timeUtc(2024, 3, 24, 12, 20), timeUtc(2024, 3, 24, 12, 30)},
		},
		{
			name: "on tick",
			from: timeUtc(2024, 3, 24, 12, 10),
			want: []time.Time{timeUtc(2024, 3, 24, 12, 20), timeUtc(2024, 3, 24, 12, 30), timeUtc(2024, 3, 24, 12, 40)},
		},
		{
			name: "before anchor",
			from: timeUtc(2024, 3, 24, 2, 0),
			want: []time.Time{timeUtc(2024, 3, 24, 8, 0), timeUtc(2024, 3, 24, 8, 10), timeUtc(2024, 3, 24, 8, 20)},
		},
	}

	for _, d := range data {
		got, err := s.NextOccurrences(3, d.from)
		if err != nil {
			t.Fatalf("%s: NextOccurrences error: %v", d.name, err)
		}
		assertTimes(t, d.name, got, d.want)
	}
}

func TestConstantFarFuture(t *testing.T) {
	t.Parallel()
	s, err := NewConstant(time.Hour, time.Time{})
	if err != nil {
		t.Fatalf("NewConstant error: %v", err)
	}
	from := timeUtc(2400, 1, 1, 0, 30)
	got, err := s.NextOccurrences(2, from)
	if err != nil {
		t.Fatalf("NextOccurrences error: %v", err)
	}
	assertTimes(t, "far future", got, []time.Time{timeUtc(2400, 1, 1, 1, 0), timeUtc(2400, 1, 1, 2, 0)})
}

func TestConstantLargeCount(t *testing.T) {
	t.Parallel()
	s, err := NewConstant(time.Millisecond, timeUtc(2024, 1, 1, 0, 0))
	if err != nil {
		t.Fatalf("NewConstant error: %v", err)
	}
	got, err := s.NextOccurrences(1000, timeUtc(2024, 1, 1, 0, 0))
	if err != nil {
		t.Fatalf("NextOccurrences error: %v", err)
	}
	want := time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	if len(got) != 1000 || !got[999].Equal(want) {
		t.Fatalf("last occurrence = %v, want %v", got[len(got)-1], want)
	}
}

func TestNewConstantInvalid(t *testing.T) {
	t.Parallel()
	for _, d := range []time.Duration{0, -time.Second} {
		if _, err := NewConstant(d, time.Time{}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewConstant(%s) err = %v, want ErrInvalidArgument", d, err)
		}
	}
}

func TestZeroValueScheduleIsInvalid(t *testing.T) {
	t.Parallel()
	for name, s := range map[string]Schedule{
		"constant": Constant{},
		"daily":    Daily{},
		"weekly":   Weekly{},
		"cron":     Cron{},
		"bounded":  Bounded{},
	} {
		if _, err := s.NextOccurrences(1, time.Time{}); !errors.Is(err, ErrInvalidSchedule) {
			t.Errorf("%s: err = %v, want ErrInvalidSchedule", name, err)
		}
	}
}

func assertTimes(t *testing.T, name string, got, want []time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d (%v)", name, len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("%s: occurrence %d = %v, want %v", name, i, got[i], want[i])
		}
	}
}
