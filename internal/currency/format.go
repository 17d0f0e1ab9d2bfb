package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"PLN": "zł",
	"JPY": "¥",
}

// Format renders an amount for human-readable reminder text. It is purely
// cosmetic; no numeric logic anywhere reads its output back.
func Format(amount decimal.Decimal, code string) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])
	rendered := grouped + "." + parts[1]

	if negative {
		rendered = "-" + rendered
	}
	if symbol, ok := symbols[code]; ok {
		return symbol + rendered
	}
	if code == "" {
		return rendered
	}
	return code + " " + rendered
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
