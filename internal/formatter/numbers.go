package formatter

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits the way the report tables expect: 1,234,567.89.
var printer = message.NewPrinter(language.English)

// FormatInt renders n with comma thousands separators.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat renders f with the given decimals and comma thousands separators.
func FormatFloat(f float64, decimals int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	return printer.Sprintf("%.*f", max(decimals, 0), f)
}

// FormatPercent renders a ratio as a percentage with one decimal.
func FormatPercent(ratio float64) string {
	return FormatFloat(ratio*100, 1) + "%"
}
