package config

import (
	"sort"
	"strings"

	logx "timerctl/pkg/logx"
)

// ScheduleChanges lists schedule names added, removed or redefined between
// two configs. Each list is sorted.
type ScheduleChanges struct {
	Added   []string
	Removed []string
	Changed []string
}

func (c ScheduleChanges) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// DiffSchedules compares the schedules sections of oldCfg and newCfg.
func DiffSchedules(oldCfg, newCfg *Config) ScheduleChanges {
	index := func(cfg *Config) map[string]ScheduleConfig {
		m := map[string]ScheduleConfig{}
		if cfg == nil {
			return m
		}
		for _, s := range cfg.Schedules {
			m[strings.TrimSpace(s.Name)] = s
		}
		return m
	}
	before, after := index(oldCfg), index(newCfg)

	var ch ScheduleChanges
	for name, s := range after {
		prev, ok := before[name]
		switch {
		case !ok:
			ch.Added = append(ch.Added, name)
		case strings.TrimSpace(prev.Spec) != strings.TrimSpace(s.Spec) ||
			strings.TrimSpace(prev.Anchor) != strings.TrimSpace(s.Anchor) ||
			strings.TrimSpace(prev.End) != strings.TrimSpace(s.End):
			ch.Changed = append(ch.Changed, name)
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			ch.Removed = append(ch.Removed, name)
		}
	}
	sort.Strings(ch.Added)
	sort.Strings(ch.Removed)
	sort.Strings(ch.Changed)
	return ch
}

// SummarizeConfigChange returns the changed sections and structured fields
// for a reload log line.
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}
	var (
		sections []string
		fields   []logx.Field
	)
	if oldCfg.Logging != newCfg.Logging {
		sections = append(sections, "logging")
		fields = append(fields,
			logx.String("logging.level", newCfg.Logging.Level),
			logx.Bool("logging.console", newCfg.Logging.Console),
			logx.Bool("logging.file_enabled", newCfg.Logging.File.Enabled),
		)
	}
	if strings.TrimSpace(oldCfg.Timezone) != strings.TrimSpace(newCfg.Timezone) {
		sections = append(sections, "timezone")
		fields = append(fields, logx.String("timezone", strings.TrimSpace(newCfg.Timezone)))
	}
	if oldCfg.PreviewCount() != newCfg.PreviewCount() {
		sections = append(sections, "preview")
		fields = append(fields, logx.Int("preview.count", newCfg.PreviewCount()))
	}
	if ch := DiffSchedules(oldCfg, newCfg); !ch.Empty() {
		sections = append(sections, "schedules")
		fields = append(fields,
			logx.String("schedules.added", strings.Join(ch.Added, ",")),
			logx.String("schedules.removed", strings.Join(ch.Removed, ",")),
			logx.String("schedules.changed", strings.Join(ch.Changed, ",")),
		)
	}
	return sections, fields
}
