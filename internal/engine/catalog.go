package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rshade/solarsizer/internal/greenops"
)

// Default catalog values.
const (
	DefaultCurrency    = "COP"
	DefaultCostPerKWp  = 375320
	DefaultPanelAreaM2 = 1.13
	MonthsPerYear      = 12
	DaysPerYear        = 365
)

// Zone is a named geographic region with an average monthly yield per kWp.
type Zone struct {
	Name         string  `yaml:"name"          json:"name"`
	MonthlyYield float64 `yaml:"monthly_yield" json:"monthly_yield"`
}

// AnnualYield returns the zone's yearly energy per installed kWp.
func (z Zone) AnnualYield() float64 {
	return z.MonthlyYield * MonthsPerYear
}

// PanelSpec lists the panel wattage classes offered.
type PanelSpec struct {
	// ClassesW are the peak wattages, in ascending order.
	ClassesW []int `yaml:"classes_w"   json:"classes_w"`

	// AreaM2 is the footprint of a single panel, identical for all classes.
	AreaM2 float64 `yaml:"area_m2"     json:"area_m2"`

	// ReferenceW is the class used for mounting, cost and area figures.
	ReferenceW int `yaml:"reference_w" json:"reference_w"`
}

// InverterSpec pairs an inverter capacity with the panel class it serves.
type InverterSpec struct {
	CapacityW int `yaml:"capacity_w" json:"capacity_w"`
	PanelW    int `yaml:"panel_w"    json:"panel_w"`

	// NominalPanelW is the per-panel wattage used in the inverter formula.
	// It normally equals PanelW; the 12000 W unit is rated against 600 W.
	NominalPanelW int `yaml:"nominal_panel_w" json:"nominal_panel_w"`
}

// GelSpec holds the constants for sizing a gel battery bank.
type GelSpec struct {
	VoltageV         float64 `yaml:"voltage_v"          json:"voltage_v"`
	DepthOfDischarge float64 `yaml:"depth_of_discharge" json:"depth_of_discharge"`
	ClassesAh        []int   `yaml:"classes_ah"         json:"classes_ah"`
}

// LithiumSpec holds the constants for sizing a lithium battery bank.
type LithiumSpec struct {
	VoltageV       float64 `yaml:"voltage_v"       json:"voltage_v"`
	Efficiency     float64 `yaml:"efficiency"      json:"efficiency"`
	AutonomyFactor float64 `yaml:"autonomy_factor" json:"autonomy_factor"`
	ClassesAh      []int   `yaml:"classes_ah"      json:"classes_ah"`
}

// BatterySpecs groups both battery chemistries.
type BatterySpecs struct {
	Gel     GelSpec     `yaml:"gel"     json:"gel"`
	Lithium LithiumSpec `yaml:"lithium" json:"lithium"`
}

// MountingSpec holds the ratios used to size rails and clamps.
type MountingSpec struct {
	RailLengthM       float64 `yaml:"rail_length_m"        json:"rail_length_m"`
	RailSpanFactor    float64 `yaml:"rail_span_factor"     json:"rail_span_factor"`
	RailsPerRow       int     `yaml:"rails_per_row"        json:"rails_per_row"`
	MidClampsPerPanel int     `yaml:"mid_clamps_per_panel" json:"mid_clamps_per_panel"`
	MidClampOffset    int     `yaml:"mid_clamp_offset"     json:"mid_clamp_offset"`
	PanelsPerEndClamp int     `yaml:"panels_per_end_clamp" json:"panels_per_end_clamp"`
}

// PricingSpec holds the money constants.
type PricingSpec struct {
	// CostPerKWp is multiplied by the reference panel count to price a project.
	CostPerKWp decimal.Decimal `yaml:"cost_per_kwp" json:"cost_per_kwp"`

	// TaxReductionFraction is the share of the project cost deductible from taxes.
	TaxReductionFraction decimal.Decimal `yaml:"tax_reduction_fraction" json:"tax_reduction_fraction"`
}

// Catalog is the complete set of lookup tables and constants driving the engine.
type Catalog struct {
	Currency  string           `yaml:"currency"  json:"currency"`
	Zones     []Zone           `yaml:"zones"     json:"zones"`
	Panels    PanelSpec        `yaml:"panels"    json:"panels"`
	Inverters []InverterSpec   `yaml:"inverters" json:"inverters"`
	Batteries BatterySpecs     `yaml:"batteries" json:"batteries"`
	Mounting  MountingSpec     `yaml:"mounting"  json:"mounting"`
	Pricing   PricingSpec      `yaml:"pricing"   json:"pricing"`
	Emissions greenops.Factors `yaml:"emissions" json:"emissions"`
}

// DefaultCatalog returns the built-in catalog for Colombian installations.
func DefaultCatalog() Catalog {
	return Catalog{
		Currency: DefaultCurrency,
		Zones: []Zone{
			{Name: "Costa Caribe", MonthlyYield: 1643},
			{Name: "Región Andina", MonthlyYield: 1460},
			{Name: "Región Pacífica", MonthlyYield: 1278},
			{Name: "Llanos Orientales", MonthlyYield: 1643},
			{Name: "Amazonía", MonthlyYield: 1278},
			{Name: "Desierto de la Guajira", MonthlyYield: 2190},
		},
		Panels: PanelSpec{
			ClassesW:   []int{400, 585, 605},
			AreaM2:     DefaultPanelAreaM2,
			ReferenceW: 400,
		},
		Inverters: []InverterSpec{
			{CapacityW: 3500, PanelW: 400, NominalPanelW: 400},
			{CapacityW: 6000, PanelW: 585, NominalPanelW: 585},
			{CapacityW: 12000, PanelW: 605, NominalPanelW: 600},
		},
		Batteries: BatterySpecs{
			Gel: GelSpec{
				VoltageV:         12,
				DepthOfDischarge: 0.5,
				ClassesAh:        []int{100, 150, 200, 250},
			},
			Lithium: LithiumSpec{
				VoltageV:       24,
				Efficiency:     0.9,
				AutonomyFactor: 12,
				ClassesAh:      []int{60, 100, 120, 150, 200},
			},
		},
		Mounting: MountingSpec{
			RailLengthM:       4.7,
			RailSpanFactor:    1.15,
			RailsPerRow:       2,
			MidClampsPerPanel: 2,
			MidClampOffset:    2,
			PanelsPerEndClamp: 2,
		},
		Pricing: PricingSpec{
			CostPerKWp:           decimal.NewFromInt(DefaultCostPerKWp),
			TaxReductionFraction: decimal.NewFromFloat(0.5),
		},
		Emissions: greenops.DefaultFactors(),
	}
}

// ZoneNames returns the supported zone names in catalog order.
func (c Catalog) ZoneNames() []string {
	names := make([]string, 0, len(c.Zones))
	for _, z := range c.Zones {
		names = append(names, z.Name)
	}
	return names
}

// ResolveZone looks up a zone by exact name after trimming surrounding whitespace.
func (c Catalog) ResolveZone(name string) (Zone, error) {
	trimmed := strings.TrimSpace(name)
	for _, z := range c.Zones {
		if z.Name == trimmed {
			return z, nil
		}
	}
	return Zone{}, fmt.Errorf("%w: %q", ErrZoneNotFound, trimmed)
}

// Validate checks the catalog and reports every problem found at once.
//
//nolint:gocognit,funlen // A flat list of checks reads better than helpers.
func (c Catalog) Validate() error {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(c.Currency) == "" {
		addf("currency is required")
	}

	if len(c.Zones) == 0 {
		addf("at least one zone is required")
	}
	seen := make(map[string]bool, len(c.Zones))
	for i, z := range c.Zones {
		if strings.TrimSpace(z.Name) == "" {
			addf("zones[%d]: name is required", i)
		}
		if seen[z.Name] {
			addf("zones[%d]: duplicate zone %q", i, z.Name)
		}
		seen[z.Name] = true
		if !positive(z.MonthlyYield) {
			addf("zones[%d]: monthly_yield must be positive", i)
		}
	}

	if len(c.Panels.ClassesW) == 0 {
		addf("panels.classes_w must not be empty")
	}
	for i, z := range c.Zones {
		if !positive(z.MonthlyYield) {
			continue
		}
		for _, w := range c.Panels.ClassesW {
			if w > 0 && panelEnergy(w, z.AnnualYield()) <= 0 {
				addf("zones[%d]: a %d Wp panel yields no energy at monthly_yield %v", i, w, z.MonthlyYield)
				break
			}
		}
	}
	hasReference := false
	for i, w := range c.Panels.ClassesW {
		if w <= 0 {
			addf("panels.classes_w[%d] must be positive", i)
		}
		if i > 0 && w <= c.Panels.ClassesW[i-1] {
			addf("panels.classes_w must be strictly ascending")
		}
		if w == c.Panels.ReferenceW {
			hasReference = true
		}
	}
	if !hasReference {
		addf("panels.reference_w %d is not one of panels.classes_w", c.Panels.ReferenceW)
	}
	if !positive(c.Panels.AreaM2) {
		addf("panels.area_m2 must be positive")
	}

	for i, inv := range c.Inverters {
		if inv.CapacityW <= 0 || inv.NominalPanelW <= 0 {
			addf("inverters[%d]: capacity_w and nominal_panel_w must be positive", i)
		}
		if !slices.Contains(c.Panels.ClassesW, inv.PanelW) {
			addf("inverters[%d]: panel_w %d is not a panel class", i, inv.PanelW)
		}
	}

	gel := c.Batteries.Gel
	if !positive(gel.VoltageV) || !positive(gel.DepthOfDischarge) || gel.DepthOfDischarge > 1 {
		addf("batteries.gel: voltage_v must be positive and depth_of_discharge in (0,1]")
	}
	if !allPositive(gel.ClassesAh) {
		addf("batteries.gel.classes_ah must be non-empty and positive")
	}
	li := c.Batteries.Lithium
	if !positive(li.VoltageV) || !positive(li.Efficiency) || !positive(li.AutonomyFactor) {
		addf("batteries.lithium: voltage_v, efficiency and autonomy_factor must be positive")
	}
	if !allPositive(li.ClassesAh) {
		addf("batteries.lithium.classes_ah must be non-empty and positive")
	}

	m := c.Mounting
	if !positive(m.RailLengthM) || !positive(m.RailSpanFactor) {
		addf("mounting: rail_length_m and rail_span_factor must be positive")
	}
	if m.RailsPerRow <= 0 || m.MidClampsPerPanel <= 0 || m.PanelsPerEndClamp <= 0 || m.MidClampOffset < 0 {
		addf("mounting: clamp and rail ratios must be positive")
	}

	if !c.Pricing.CostPerKWp.IsPositive() {
		addf("pricing.cost_per_kwp must be positive")
	}
	if c.Pricing.TaxReductionFraction.IsNegative() || c.Pricing.TaxReductionFraction.GreaterThan(decimal.NewFromInt(1)) {
		addf("pricing.tax_reduction_fraction must be between 0 and 1")
	}

	if err := c.Emissions.Validate(); err != nil {
		addf("emissions: %v", err)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func allPositive(values []int) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}
	return true
}
