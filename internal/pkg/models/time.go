package models

import (
	"fmt"
	"time"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// FormatTime formats a time.Time according to RFC3339
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// NextHour returns the hour following h on a 24h clock
func NextHour(h int) int {
	return (h + 1) % 24
}

// HourRangeLabel renders "H:00 and H+1:00" for dashboard captions
func HourRangeLabel(h int) string {
	return fmt.Sprintf("%d:00 and %d:00", h, NextHour(h))
}
