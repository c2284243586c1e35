package greenops

// Emission factor defaults.
//
// These are global averages, not grid-specific measurements. They are loaded
// into Factors by DefaultFactors and may be overridden from the emissions
// section of the configuration file.
const (
	// DefaultCO2TonnesPerKWh is the metric tonnes of CO2 emitted per kWh of
	// grid electricity (global average).
	DefaultCO2TonnesPerKWh = 0.0007

	// DefaultCO2TonnesPerKm is the metric tonnes of CO2 emitted per kilometre
	// driven by an average combustion car.
	DefaultCO2TonnesPerKm = 0.00025

	// DefaultCoveragePercent is the share of demand offset by the solar system.
	DefaultCoveragePercent = 100.0
)

// Coverage bounds in percent.
const (
	MinCoveragePercent = 0.0
	MaxCoveragePercent = 100.0
)

// Display constants.
const (
	// TonnesPrecision is the number of decimals kept for avoided CO2.
	TonnesPrecision = 2

	// LargeNumberThreshold is the threshold for using abbreviated display.
	// Values at or above this threshold use "~X.X million" format.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is the threshold for billion-scale display.
	BillionThreshold = 1_000_000_000
)
