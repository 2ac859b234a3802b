package storage

import (
	"database/sql"
	"time"
)

// sqliteTimeLayout matches SQLite's datetime('now') output.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// formatTime renders t in UTC using the layout SQLite's datetime() produces,
// so stored values sort lexically in time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// formatTimePtr is like formatTime but maps nil to SQL NULL.
func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseTime reads a stored timestamp, accepting SQLite's own layout and
// RFC 3339. It returns the zero time if no layout matches.
func parseTime(s string) time.Time {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseNullTime is like parseTime but returns nil for NULL or unparsable
// values.
func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := parseTime(s.String)
	if t.IsZero() {
		return nil
	}
	return &t
}
