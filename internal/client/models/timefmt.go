package models

import "time"

// TimeLayout is the fixed-width RFC 3339 layout used for timestamps in the
// local store and on the wire. The padded fraction keeps lexicographic and
// chronological order identical, which the store's ORDER BY relies on.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t in TimeLayout, normalized to UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a TimeLayout (or plain RFC 3339) timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}
