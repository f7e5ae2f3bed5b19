package utils

import (
	"testing"
	"time"
)

func TestFormatVietnameseDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatVietnameseDate(d); got != "ngày 5 tháng 3 năm 2024" {
		t.Fatalf("FormatVietnameseDate = %q", got)
	}
}

func TestFormatDateString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-05", "ngày 5 tháng 3 năm 2024"},
		{"2024-12-31T00:00:00Z", "ngày 31 tháng 12 năm 2024"},
		{"", ""},
		{"not-a-date", ""},
	}
	for _, tc := range cases {
		if got := FormatDateString(tc.in); got != tc.want {
			t.Fatalf("FormatDateString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
