package common

import "time"

// GetCurrentDateUTC returns the current date in UTC, truncated to midnight (00:00:00).
// This matches PostgreSQL's DATE() function behavior for consistency.
//
// Example:
//   - Input: 2026-08-30 14:23:45 UTC
//   - Output: 2026-08-30 00:00:00 UTC
//
// Usage: the task date stamped on daily records at init time and compared
// against by the daily reset.
func GetCurrentDateUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// TruncateToDateUTC truncates the given time to midnight (00:00:00) in UTC.
// This matches PostgreSQL's DATE() function behavior for consistency.
func TruncateToDateUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// YesterdayUTC returns yesterday's date in UTC, truncated to midnight.
// The daily reset expires unfinished daily records dated on or before it.
func YesterdayUTC() time.Time {
	return GetCurrentDateUTC().AddDate(0, 0, -1)
}
