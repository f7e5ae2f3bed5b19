package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumberToWords(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "không"},
		{-3, "không"},
		{1, "một"},
		{5, "năm"},
		{10, "mười"},
		{11, "mười một"},
		{15, "mười lăm"},
		{21, "hai mươi mốt"},
		{25, "hai mươi lăm"},
		{30, "ba mươi"},
		{99, "chín mươi chín"},
		{100, "một trăm"},
		{115, "một trăm mười lăm"},
		{321, "ba trăm hai mươi mốt"},
		{1_000, "một nghìn"},
		{30_000, "ba mươi nghìn"},
		{1_000_000, "một triệu"},
		{1_500_000, "một triệu năm trăm nghìn"},
		{30_000_000, "ba mươi triệu"},
		{35_000_000, "ba mươi lăm triệu"},
		{1_000_000_000, "một tỷ"},
		{2_000_000_015, "hai tỷ mười lăm"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			if got := NumberToWords(tc.in); got != tc.want {
				t.Fatalf("NumberToWords(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestAmountInWords(t *testing.T) {
	if got := AmountInWords(decimal.Zero); got != "không" {
		t.Fatalf("zero amount = %q, want %q", got, "không")
	}
	want := "ba mươi triệu đồng chẵn"
	if got := AmountInWords(decimal.NewFromInt(30_000_000)); got != want {
		t.Fatalf("AmountInWords = %q, want %q", got, want)
	}
	// Fractional amounts round to whole đồng before wording.
	if got := AmountInWords(decimal.NewFromFloat(999.6)); got != "một nghìn đồng chẵn" {
		t.Fatalf("AmountInWords(999.6) = %q", got)
	}
}
