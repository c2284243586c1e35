package engine

import "math"

// SizeInverters pairs every inverter with its panel class and returns the
// number of units needed to carry that class's panel count.
func SizeInverters(specs []InverterSpec, panels []PanelSizing) []InverterSizing {
	counts := make(map[int]int, len(panels))
	for _, p := range panels {
		counts[p.WattagePeak] = p.Count
	}

	inverters := make([]InverterSizing, 0, len(specs))
	for _, s := range specs {
		load := float64(counts[s.PanelW] * s.NominalPanelW)
		inverters = append(inverters, InverterSizing{
			CapacityW:           s.CapacityW,
			PanelWattage:        s.PanelW,
			NominalPanelWattage: s.NominalPanelW,
			Count:               ceilDiv(load, float64(s.CapacityW)),
		})
	}
	return inverters
}

// SizeGelBank returns the gel bank capacity needed for one day of average
// consumption at the configured depth of discharge.
func SizeGelBank(spec GelSpec, annualDemandKWh float64) BatteryBank {
	daily := annualDemandKWh / DaysPerYear
	capacity := int(math.Ceil((daily / spec.VoltageV) / spec.DepthOfDischarge))
	return newBank(ChemistryGel, capacity, spec.ClassesAh)
}

// SizeLithiumBank returns the lithium bank capacity. The autonomy factor is a
// lithium constant and is never shared with the gel bank.
func SizeLithiumBank(spec LithiumSpec, annualDemandKWh float64) BatteryBank {
	daily := annualDemandKWh / DaysPerYear
	capacity := int(math.Ceil(((daily / spec.VoltageV) * spec.Efficiency) * spec.AutonomyFactor))
	return newBank(ChemistryLithium, capacity, spec.ClassesAh)
}

func newBank(chemistry string, capacityAh int, classes []int) BatteryBank {
	units := make([]BatteryUnits, 0, len(classes))
	for _, c := range classes {
		units = append(units, BatteryUnits{
			CapacityAh: c,
			Count:      ceilDiv(float64(capacityAh), float64(c)),
		})
	}
	return BatteryBank{Chemistry: chemistry, CapacityAh: capacityAh, Units: units}
}

// SizeMounting returns rails and clamps for n reference panels.
func SizeMounting(spec MountingSpec, n int) MountingHardware {
	rails := int(math.Ceil(float64(n)*spec.RailSpanFactor/spec.RailLengthM)) * spec.RailsPerRow
	mid := max(0, n*spec.MidClampsPerPanel-spec.MidClampOffset)
	end := ceilDiv(float64(n), float64(spec.PanelsPerEndClamp))
	return MountingHardware{Rails: rails, MidClamps: mid, EndClamps: end}
}
