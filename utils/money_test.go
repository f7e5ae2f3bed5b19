package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseVietnameseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"300.000", "300000"},
		{"30.000.000", "30000000"},
		{"1.234,56", "1234.56"},
		{"0", "0"},
		{"", "0"},
		{"abc", "0"},
		{"  1.000 ", "1000"},
		{"-2.500", "-2500"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := ParseVietnameseNumber(tc.in)
			want, _ := decimal.NewFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("ParseVietnameseNumber(%q) = %s, want %s", tc.in, got, want)
			}
		})
	}
}

func TestFormatVietnameseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"300000", "300.000"},
		{"30000000", "30.000.000"},
		{"1500000", "1.500.000"},
		{"1234.5", "1.234,5"},
		{"-2500", "-2.500"},
		{"999", "999"},
		{"1000", "1.000"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			d, _ := decimal.NewFromString(tc.in)
			if got := FormatVietnameseNumber(d); got != tc.want {
				t.Fatalf("FormatVietnameseNumber(%s) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatCurrencyRoundsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1499.5", "1.500"},
		{"1499.4", "1.499"},
		{"2850000", "2.850.000"},
	}
	for _, tc := range cases {
		d, _ := decimal.NewFromString(tc.in)
		if got := FormatCurrency(d); got != tc.want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
