package config

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimeField parses an RFC3339 timestamp; empty yields the zero time.
func ParseTimeField(path, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid timestamp %q (want RFC3339): %w", path, raw, err)
	}
	return t, nil
}
