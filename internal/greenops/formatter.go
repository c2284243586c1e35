package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(16800) returns "16,800".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the given number of decimals and thousand
// separators. Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), f)
}

// FormatLarge formats large numbers with abbreviated notation.
//
// Values below LargeNumberThreshold use comma-separated format, values at or
// above it use "~X.X million" and values at or above BillionThreshold use
// "~X.X billion".
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatTonnes renders avoided CO2, e.g. "4.20 t CO2".
func FormatTonnes(t float64) string {
	return FormatFloat(t, TonnesPrecision) + " t CO2"
}

// FormatKm renders a driving distance, e.g. "16,800 km".
func FormatKm(km int64) string {
	if km >= LargeNumberThreshold {
		return FormatLarge(float64(km)) + " km"
	}
	return FormatNumber(km) + " km"
}

// Summary returns a one-line human readable description of the impact.
func (i Impact) Summary() string {
	return fmt.Sprintf("%s avoided per year, equivalent to not driving %s",
		FormatTonnes(i.CO2AvoidedTonnes), FormatKm(i.EquivalentKmAvoided))
}
