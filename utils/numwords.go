package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Vietnamese cardinal-number words, per legal-document convention:
// scale words tỷ/triệu/nghìn over 3-digit groups, with the irregular forms
// "mười X" (tens digit 1), "mốt" (units 1 after mươi) and "lăm" (units 5).

var numOnes = [10]string{"", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}

var numTens = [10]string{
	"", "mười", "hai mươi", "ba mươi", "bốn mươi",
	"năm mươi", "sáu mươi", "bảy mươi", "tám mươi", "chín mươi",
}

func groupOfThree(n int64) string {
	hundred := n / 100
	ten := (n % 100) / 10
	one := n % 10

	var parts []string
	if hundred > 0 {
		parts = append(parts, numOnes[hundred]+" trăm")
	}
	switch {
	case ten == 1:
		w := "mười"
		if one == 5 {
			w += " lăm"
		} else if one > 0 {
			w += " " + numOnes[one]
		}
		parts = append(parts, w)
	case ten >= 2:
		w := numTens[ten]
		switch one {
		case 0:
		case 1:
			w += " mốt"
		case 5:
			w += " lăm"
		default:
			w += " " + numOnes[one]
		}
		parts = append(parts, w)
	case one > 0:
		parts = append(parts, numOnes[one])
	}
	return strings.Join(parts, " ")
}

// NumberToWords converts a non-negative integer into Vietnamese cardinal
// words. Zero is "không"; negative input is treated as zero. A scale word is
// omitted entirely when its 3-digit group is zero. The result is the bare
// number-word sequence; currency phrasing is up to the caller.
func NumberToWords(n int64) string {
	if n <= 0 {
		return "không"
	}

	billions := n / 1_000_000_000
	millions := (n % 1_000_000_000) / 1_000_000
	thousands := (n % 1_000_000) / 1_000
	remainder := n % 1_000

	var parts []string
	if billions > 0 {
		parts = append(parts, groupOfThree(billions)+" tỷ")
	}
	if millions > 0 {
		parts = append(parts, groupOfThree(millions)+" triệu")
	}
	if thousands > 0 {
		parts = append(parts, groupOfThree(thousands)+" nghìn")
	}
	if remainder > 0 {
		parts = append(parts, groupOfThree(remainder))
	}
	return strings.Join(parts, " ")
}

// AmountInWords is the contract "bằng chữ" phrasing for a monetary amount:
// rounded to whole đồng, suffixed with "đồng chẵn". Zero stays the bare
// "không" (original document convention).
func AmountInWords(d decimal.Decimal) string {
	n := RoundVND(d).IntPart()
	if n <= 0 {
		return "không"
	}
	return NumberToWords(n) + " đồng chẵn"
}
