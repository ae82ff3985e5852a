// Package timer computes upcoming occurrences of recurring schedules and
// carries per-firing run metadata.
//
// The package is the calendar-math core only:
//   - Schedule kinds (constant interval, daily, weekly, cron, bounded)
//   - occurrence generation (NextOccurrences)
//   - RunContext handed to a scheduled task for one firing
//
// Parsing schedule strings lives in timer/provider. Dispatching tasks and
// detecting late firings belong to the caller.
package timer
