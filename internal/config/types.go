package config

import (
	"fmt"
	"strings"
	"time"

	"timerctl/internal/timer/provider"
	logx "timerctl/pkg/logx"
)

// DefaultPreviewCount is used when preview.count is omitted.
const DefaultPreviewCount = 5

type Config struct {
	Logging LoggingConfig `json:"logging"`

	// Timezone is an IANA name ("Europe/Warsaw"). Empty means the host's
	// local zone. Cron, daily and weekly schedules are evaluated in it.
	Timezone string `json:"timezone,omitempty"`

	Preview   PreviewConfig    `json:"preview,omitempty"`
	Schedules []ScheduleConfig `json:"schedules"`
}

type LoggingConfig struct {
	Level   string        `json:"level"`
	Console bool          `json:"console"`
	File    LogFileConfig `json:"file,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// PreviewConfig controls the occurrence report.
type PreviewConfig struct {
	Count int `json:"count,omitempty"`
}

// ScheduleConfig is one named schedule.
//
// Anchor and End are RFC3339 timestamps. Anchor aligns interval schedules;
// End clips any schedule.
type ScheduleConfig struct {
	Name   string `json:"name"`
	Spec   string `json:"spec"`
	Anchor string `json:"anchor,omitempty"`
	End    string `json:"end,omitempty"`
}

// Logx converts the logging section into logx settings.
func (l LoggingConfig) Logx() logx.Config {
	return logx.Config{
		Level:   l.Level,
		Console: l.Console,
		File:    logx.FileConfig{Enabled: l.File.Enabled, Path: l.File.Path},
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("timezone: invalid %q: %w", tz, err)
	}
	return loc, nil
}

// PreviewCount returns preview.count or DefaultPreviewCount.
func (c *Config) PreviewCount() int {
	if c.Preview.Count > 0 {
		return c.Preview.Count
	}
	return DefaultPreviewCount
}

// Definitions converts the schedules section, checking names and timestamps.
func (c *Config) Definitions() ([]provider.Definition, error) {
	seen := make(map[string]struct{}, len(c.Schedules))
	out := make([]provider.Definition, 0, len(c.Schedules))
	for i, sc := range c.Schedules {
		path := fmt.Sprintf("schedules[%d]", i)
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			return nil, fmt.Errorf("%s.name: required", path)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s.name: duplicate %q", path, name)
		}
		seen[name] = struct{}{}
		anchor, err := ParseTimeField(path+".anchor", sc.Anchor)
		if err != nil {
			return nil, err
		}
		end, err := ParseTimeField(path+".end", sc.End)
		if err != nil {
			return nil, err
		}
		out = append(out, provider.Definition{Name: name, Spec: sc.Spec, Anchor: anchor, End: end})
	}
	return out, nil
}

// Validate checks that every schedule builds in the configured timezone.
func (c *Config) Validate() error {
	if c.Preview.Count < 0 {
		return fmt.Errorf("preview.count: must be >= 0")
	}
	loc, err := c.Location()
	if err != nil {
		return err
	}
	defs, err := c.Definitions()
	if err != nil {
		return err
	}
	for _, d := range defs {
		if _, err := provider.Build(d, loc); err != nil {
			return err
		}
	}
	return nil
}
