package utils

import (
	"errors"
	"strings"
	"time"
)

// Reservation timestamps are exchanged with clients in minute
// precision.  Two input spellings are accepted, with and without the
// "T" separator; output always uses the space-separated form.
const (
	TimestampLayout    = "2006-01-02 15:04"
	timestampLayoutISO = "2006-01-02T15:04"
)

// ErrBadTimestamp is returned by ParseTimestamp for any input not in
// one of the two accepted layouts.
var ErrBadTimestamp = errors.New("invalid datetime format, use 'YYYY-MM-DD HH:MM' or 'YYYY-MM-DDTHH:MM'")

// ParseTimestamp parses a reservation timestamp.  Surrounding
// whitespace is ignored.  The value is interpreted as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, timestampLayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}

// FormatTimestamp renders a timestamp in the canonical output form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
