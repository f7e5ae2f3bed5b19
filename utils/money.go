package utils

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that tolerates the wire formats contract forms actually
// send: JSON numbers, plain numeric strings, and Vietnamese-formatted strings
// ("300.000"). Anything unparseable decodes as zero, matching the cascade's
// coercion rule.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = ParseVietnameseNumber(str)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// ParseVietnameseNumber parses an amount written in Vietnamese accounting
// convention ("." as thousands separator, "," as decimal separator) into a
// decimal. "300.000" -> 300000. Unparseable input yields zero, never an error:
// the financial cascade treats every input as valid (worst case, as zero).
func ParseVietnameseNumber(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero
	}
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatVietnameseNumber renders a decimal with "." as thousands separator
// and "," as decimal separator (300000 -> "300.000").
func FormatVietnameseNumber(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte('.')
		}
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// RoundVND rounds to whole đồng, half away from zero. Applied at display time
// only; the cascade itself keeps full precision between stages.
func RoundVND(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FormatCurrency is the display form used in contract documents:
// rounded to whole đồng, grouped with dots.
func FormatCurrency(d decimal.Decimal) string {
	return FormatVietnameseNumber(RoundVND(d))
}
