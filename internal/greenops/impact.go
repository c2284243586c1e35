package greenops

import (
	"fmt"
	"math"
)

// maxEnergyKWh bounds the energy accepted by CalculateImpact so that the
// kilometre conversion always fits in an int64.
const maxEnergyKWh = 1e12

// CalculateImpact converts annual energy demand into avoided CO2 and the
// equivalent distance driven by an average car.
//
// coveragePercent is the share of the demand supplied by solar. The kilometre
// figure is derived from the unrounded CO2 value and truncated; the reported
// tonnes are rounded to TonnesPrecision decimals.
func CalculateImpact(annualDemandKWh, coveragePercent float64, f Factors) (Impact, error) {
	if math.IsNaN(annualDemandKWh) || math.IsInf(annualDemandKWh, 0) {
		return Impact{}, fmt.Errorf("annual demand %v: %w", annualDemandKWh, ErrNegativeValue)
	}
	if annualDemandKWh < 0 {
		return Impact{}, fmt.Errorf("annual demand %.2f: %w", annualDemandKWh, ErrNegativeValue)
	}
	if annualDemandKWh > maxEnergyKWh {
		return Impact{}, fmt.Errorf("annual demand %.0f: %w", annualDemandKWh, ErrCalculationOverflow)
	}
	if math.IsNaN(coveragePercent) || coveragePercent < MinCoveragePercent || coveragePercent > MaxCoveragePercent {
		return Impact{}, fmt.Errorf("coverage %v: %w", coveragePercent, ErrCoverageOutOfRange)
	}
	if !(f.CO2TonnesPerKWh > 0) || !(f.CO2TonnesPerKm > 0) {
		return Impact{}, ErrInvalidFactor
	}

	solar := annualDemandKWh * (coveragePercent / MaxCoveragePercent)
	co2 := solar * f.CO2TonnesPerKWh
	km := math.Floor(co2 / f.CO2TonnesPerKm)

	return Impact{
		SolarEnergyKWh:      solar,
		CO2AvoidedTonnes:    roundTo(co2, TonnesPrecision),
		EquivalentKmAvoided: int64(km),
	}, nil
}

func roundTo(v float64, places int) float64 {
	const base = 10
	p := math.Pow(base, float64(places))
	return math.Round(v*p) / p
}
