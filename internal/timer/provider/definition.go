package provider

import (
	"fmt"
	"strings"
	"time"

	"timerctl/internal/timer"
)

// Definition is one named schedule as the dispatcher configures it.
type Definition struct {
	Name string
	Spec string

	// Anchor aligns interval schedules; zero means the Unix epoch.
	Anchor time.Time
	// End clips the schedule; zero means unbounded.
	End time.Time
}

// Build turns def into a schedule evaluated in loc.
func Build(def Definition, loc *time.Location) (timer.Schedule, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, fmt.Errorf("name required")
	}
	ps, err := ParseSpec(def.Spec)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", name, err)
	}
	if !def.Anchor.IsZero() && ps.Kind != SpecInterval {
		return nil, fmt.Errorf("schedule %q: anchor only applies to interval schedules", name)
	}
	s, err := ps.Build(loc, def.Anchor)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", name, err)
	}
	if def.End.IsZero() {
		return s, nil
	}
	b, err := timer.NewBounded(s, def.End)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", name, err)
	}
	return b, nil
}
