package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatMoney renders the integer part of an amount with a leading "$" and
// "." as thousands separator, e.g. $4.800.000. Fractions are truncated.
func FormatMoney(d decimal.Decimal) string {
	return "$" + FormatInt(d.IntPart())
}

// FormatInt renders n with "." as thousands separator.
func FormatInt(n int64) string {
	return strings.ReplaceAll(printer.Sprintf("%d", n), ",", ".")
}

// FormatQuantity renders a decimal quantity, dropping the fraction when it is whole.
func FormatQuantity(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsInteger() {
		return FormatInt(d.IntPart())
	}
	s := printer.Sprintf("%.2f", v)
	// Swap separators: 1,234.50 becomes 1.234,50.
	return strings.NewReplacer(",", ".", ".", ",").Replace(s)
}
