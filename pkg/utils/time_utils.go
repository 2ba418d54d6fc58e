package utils

import (
	"fmt"
	"time"
)

// Formats used across report output and email bodies.

func FormatReportDate(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("January 2, 2006")
}

func FormatReportTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("3:04 PM")
}

// FormatCompletionTime renders elapsed seconds as "4m 05s" (or "32s" under a
// minute). Zero or negative means the duration was not recorded.
func FormatCompletionTime(seconds int) string {
	if seconds <= 0 {
		return "Not recorded"
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

func NowUnixMillis() int64 { return time.Now().UnixMilli() }
