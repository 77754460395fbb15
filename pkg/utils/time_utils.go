package utils

import "time"

// ISOTimestampLayout renders UTC times with millisecond precision and a Z suffix,
// e.g. 2026-10-19T08:30:00.123Z. Values sort lexically in time order.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOTimestampLayout)
}

// NowISO is swapped out in tests that need a fixed clock.
var NowISO = func() string { return FormatISOTimestamp(time.Now()) }
