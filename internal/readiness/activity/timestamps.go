package activity

import (
	"strings"
	"time"
)

// Layout is the fixed-width UTC format every timestamp written by this service uses.
// Fixed width keeps lexical and chronological order identical in TEXT columns.
const Layout = "2006-01-02T15:04:05.000000Z"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Format renders t in Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse accepts RFC3339 and naive ISO-8601 timestamps. Naive values are taken as UTC.
func Parse(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseAll parses every value and drops the ones that do not parse.
func ParseAll(raw []string) []time.Time {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		if t, ok := Parse(s); ok {
			out = append(out, t)
		}
	}
	return out
}
