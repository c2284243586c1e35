package engine

import (
	"fmt"
	"math"
)

// MaxMonthlyDemandKWh bounds accepted demand; larger values are rejected as input errors.
const MaxMonthlyDemandKWh = 1e9

const wattsPerKilowatt = 1000

// SizePanels returns, for every panel class, the energy one panel produces in
// a year at the given yield and the number of panels needed to cover the
// monthly demand.
func SizePanels(spec PanelSpec, annualYield, monthlyDemandKWh float64) ([]PanelSizing, error) {
	if err := validateDemand(monthlyDemandKWh); err != nil {
		return nil, err
	}
	if !positive(annualYield) {
		return nil, fmt.Errorf("%w: annual yield must be positive, got %v", ErrInvalidInput, annualYield)
	}
	return sizePanels(spec, annualYield, monthlyDemandKWh*MonthsPerYear)
}

// sizePanels fails with ErrConfiguration when a class rounds to no energy at
// the given yield, since no number of such panels covers a positive demand.
func sizePanels(spec PanelSpec, annualYield, annualDemandKWh float64) ([]PanelSizing, error) {
	panels := make([]PanelSizing, 0, len(spec.ClassesW))
	for _, w := range spec.ClassesW {
		energy := panelEnergy(w, annualYield)
		if energy <= 0 {
			return nil, fmt.Errorf("%w: a %d Wp panel yields no energy at %v kWh/kWp per year",
				ErrConfiguration, w, annualYield)
		}
		panels = append(panels, PanelSizing{
			WattagePeak:       w,
			EnergyPerPanelKWh: energy,
			Count:             ceilDiv(annualDemandKWh, energy),
		})
	}
	return panels, nil
}

// panelEnergy is the annual energy in kWh of one panel of wattage w, rounded to cents.
func panelEnergy(w int, annualYield float64) float64 {
	kWp := float64(w) / wattsPerKilowatt
	return round2(kWp * annualYield)
}

func validateDemand(monthlyDemandKWh float64) error {
	switch {
	case math.IsNaN(monthlyDemandKWh) || math.IsInf(monthlyDemandKWh, 0):
		return fmt.Errorf("%w: monthly demand must be a finite number", ErrInvalidInput)
	case monthlyDemandKWh < 0:
		return fmt.Errorf("%w: monthly demand must not be negative, got %v", ErrInvalidInput, monthlyDemandKWh)
	case monthlyDemandKWh > MaxMonthlyDemandKWh:
		return fmt.Errorf("%w: monthly demand exceeds %.0f kWh", ErrInvalidInput, MaxMonthlyDemandKWh)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilDiv returns ceil(a/b) as an int, or zero when b is not positive.
func ceilDiv(a, b float64) int {
	if b <= 0 {
		return 0
	}
	return int(math.Ceil(a / b))
}
