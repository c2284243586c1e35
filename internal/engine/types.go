package engine

import (
	"github.com/shopspring/decimal"

	"github.com/rshade/solarsizer/internal/greenops"
)

// Battery chemistries.
const (
	ChemistryGel     = "gel"
	ChemistryLithium = "lithium"
)

// ProjectInput is the user supplied description of a project.
type ProjectInput struct {
	Zone             string  `json:"zone"`
	MonthlyDemandKWh float64 `json:"monthly_demand_kwh"`
	UnitEnergyCost   float64 `json:"unit_energy_cost"`
}

// PanelSizing is the number of panels of one wattage class needed to cover demand.
type PanelSizing struct {
	WattagePeak       int     `json:"wattage_peak"`
	EnergyPerPanelKWh float64 `json:"energy_per_panel_kwh"`
	Count             int     `json:"count"`
}

// InverterSizing is the number of inverters needed for one panel class.
type InverterSizing struct {
	CapacityW           int `json:"capacity_w"`
	PanelWattage        int `json:"panel_wattage"`
	NominalPanelWattage int `json:"nominal_panel_wattage"`
	Count               int `json:"count"`
}

// BatteryUnits is the number of batteries of one capacity class that make up a bank.
type BatteryUnits struct {
	CapacityAh int `json:"capacity_ah"`
	Count      int `json:"count"`
}

// BatteryBank is the total capacity required for one chemistry and its
// breakdown per battery class.
type BatteryBank struct {
	Chemistry  string         `json:"chemistry"`
	CapacityAh int            `json:"capacity_ah"`
	Units      []BatteryUnits `json:"units"`
}

// MountingHardware counts the structural parts for the reference panel layout.
type MountingHardware struct {
	Rails     int `json:"rails"`
	MidClamps int `json:"mid_clamps"`
	EndClamps int `json:"end_clamps"`
}

// FinancialSummary holds the money figures of a project.
type FinancialSummary struct {
	Currency      string          `json:"currency"`
	ProjectCost   decimal.Decimal `json:"project_cost"`
	AnnualSavings decimal.Decimal `json:"annual_savings"`
	TaxReduction  decimal.Decimal `json:"tax_reduction"`
	MinimumAreaM2 int             `json:"minimum_area_m2"`
}

// SizingResult is the complete output of Estimate.
type SizingResult struct {
	Input                ProjectInput     `json:"input"`
	AnnualYieldKWhPerKWp float64          `json:"annual_yield_kwh_per_kwp"`
	AnnualDemandKWh      float64          `json:"annual_demand_kwh"`
	Panels               []PanelSizing    `json:"panels"`
	Inverters            []InverterSizing `json:"inverters"`
	GelBank              BatteryBank      `json:"gel_bank"`
	LithiumBank          BatteryBank      `json:"lithium_bank"`
	Mounting             MountingHardware `json:"mounting"`
	Financial            FinancialSummary `json:"financial"`
	Environmental        greenops.Impact  `json:"environmental"`
}

// PanelCount returns the number of panels of the given wattage class.
func (r *SizingResult) PanelCount(wattage int) (int, bool) {
	for _, p := range r.Panels {
		if p.WattagePeak == wattage {
			return p.Count, true
		}
	}
	return 0, false
}
