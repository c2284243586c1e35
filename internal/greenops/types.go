// Package greenops estimates the environmental impact of a solar installation.
//
// It converts the energy a system is expected to produce into avoided CO2
// emissions and expresses that figure as kilometres not driven in an average
// combustion car, a comparison most clients relate to more easily than tonnes.
package greenops

// Factors holds the emission factors used by CalculateImpact.
type Factors struct {
	// CO2TonnesPerKWh is the CO2 avoided per kWh produced by the solar system.
	CO2TonnesPerKWh float64 `yaml:"co2_tonnes_per_kwh" json:"co2_tonnes_per_kwh"`

	// CO2TonnesPerKm is the CO2 emitted per kilometre by an average car.
	CO2TonnesPerKm float64 `yaml:"co2_tonnes_per_km" json:"co2_tonnes_per_km"`

	// CoveragePercent is the default share of annual demand covered by solar.
	CoveragePercent float64 `yaml:"coverage_percent" json:"coverage_percent"`
}

// DefaultFactors returns the built-in emission factors.
func DefaultFactors() Factors {
	return Factors{
		CO2TonnesPerKWh: DefaultCO2TonnesPerKWh,
		CO2TonnesPerKm:  DefaultCO2TonnesPerKm,
		CoveragePercent: DefaultCoveragePercent,
	}
}

// Validate reports whether the factors can be used for a calculation.
func (f Factors) Validate() error {
	if !(f.CO2TonnesPerKWh > 0) || !(f.CO2TonnesPerKm > 0) {
		return ErrInvalidFactor
	}
	if f.CoveragePercent < MinCoveragePercent || f.CoveragePercent > MaxCoveragePercent {
		return ErrCoverageOutOfRange
	}
	return nil
}

// Impact is the environmental summary of a sizing result.
type Impact struct {
	// SolarEnergyKWh is the annual energy offset by the system.
	SolarEnergyKWh float64 `json:"solar_energy_kwh"`

	// CO2AvoidedTonnes is the avoided CO2 per year, rounded to two decimals.
	CO2AvoidedTonnes float64 `json:"co2_avoided_tonnes"`

	// EquivalentKmAvoided is the number of car kilometres emitting the same
	// CO2, truncated so the comparison is never overstated.
	EquivalentKmAvoided int64 `json:"equivalent_km_avoided"`
}
