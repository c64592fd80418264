package ui

import (
	"strings"
	"time"
)

const (
	displayLayout = "1/2/2006, 3:04:05 PM"
	noDate        = "No date"
	invalidDate   = "Invalid Date"
)

// inputLayouts are tried in order. Zone-less values are read as local time,
// which is what a datetime-local picker produces.
var inputLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02", false},
}

// FormatDate renders a stored dateTime in the en-US locale style. An empty
// value is "No date", an unparseable one "Invalid Date".
func FormatDate(raw string) string {
	return formatDateIn(raw, time.Local)
}

func formatDateIn(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return noDate
	}
	for _, in := range inputLayouts {
		var (
			t   time.Time
			err error
		)
		if in.zoned {
			t, err = time.Parse(in.layout, raw)
		} else {
			t, err = time.ParseInLocation(in.layout, raw, loc)
		}
		if err == nil {
			return t.In(loc).Format(displayLayout)
		}
	}
	return invalidDate
}
