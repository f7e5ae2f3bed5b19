package utils

import (
	"fmt"
	"time"
)

// FormatVietnameseDate renders a date in the legal-document form
// "ngày D tháng M năm YYYY" (day and month unpadded).
func FormatVietnameseDate(t time.Time) string {
	return fmt.Sprintf("ngày %d tháng %d năm %d", t.Day(), int(t.Month()), t.Year())
}

// FormatDateString parses an ISO date ("2006-01-02", with RFC3339 fallback)
// and formats it Vietnamese-style. Empty or unparseable input yields "".
func FormatDateString(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return ""
		}
	}
	return FormatVietnameseDate(t)
}
