package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rshade/solarsizer/internal/greenops"
	"github.com/rshade/solarsizer/internal/logging"
)

// Engine runs the sizing pipeline against a validated catalog.
type Engine struct {
	catalog Catalog
}

// New validates the catalog and returns an engine bound to it. The catalog is
// copied so later changes by the caller do not affect the engine.
func New(catalog Catalog) (*Engine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &Engine{catalog: cloneCatalog(catalog)}, nil
}

// Catalog returns a copy of the catalog the engine was built with.
func (e *Engine) Catalog() Catalog {
	return cloneCatalog(e.catalog)
}

// ZoneNames returns the supported zones in catalog order.
func (e *Engine) ZoneNames() []string {
	return e.catalog.ZoneNames()
}

// AnnualYield returns the yearly energy per kWp for a zone.
func (e *Engine) AnnualYield(zone string) (float64, error) {
	z, err := e.catalog.ResolveZone(zone)
	if err != nil {
		return 0, err
	}
	return z.AnnualYield(), nil
}

// Estimate sizes a project. It fails atomically: on error the result is nil.
//
// The zone is resolved before the numeric inputs are checked, so an unknown
// zone is reported even when the demand is also invalid.
func (e *Engine) Estimate(ctx context.Context, in ProjectInput) (*SizingResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "estimate").
		Str("zone", in.Zone).
		Float64("monthly_demand_kwh", in.MonthlyDemandKWh).
		Float64("unit_energy_cost", in.UnitEnergyCost).
		Msg("starting estimate")

	zone, err := e.catalog.ResolveZone(in.Zone)
	if err != nil {
		return nil, err
	}
	if err = validateDemand(in.MonthlyDemandKWh); err != nil {
		return nil, err
	}
	if math.IsNaN(in.UnitEnergyCost) || math.IsInf(in.UnitEnergyCost, 0) || in.UnitEnergyCost <= 0 {
		return nil, fmt.Errorf("%w: unit energy cost must be a positive number, got %v",
			ErrInvalidInput, in.UnitEnergyCost)
	}

	annualYield := zone.AnnualYield()
	annualDemand := in.MonthlyDemandKWh * MonthsPerYear
	panels, err := sizePanels(e.catalog.Panels, annualYield, annualDemand)
	if err != nil {
		return nil, err
	}
	sized := SizingResult{Panels: panels}
	reference, ok := sized.PanelCount(e.catalog.Panels.ReferenceW)
	if !ok {
		return nil, fmt.Errorf("%w: reference panel %d Wp is not a panel class",
			ErrConfiguration, e.catalog.Panels.ReferenceW)
	}

	impact, err := greenops.CalculateImpact(annualDemand, e.catalog.Emissions.CoveragePercent, e.catalog.Emissions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	in.Zone = zone.Name
	result := &SizingResult{
		Input:                in,
		AnnualYieldKWhPerKWp: annualYield,
		AnnualDemandKWh:      annualDemand,
		Panels:               panels,
		Inverters:            SizeInverters(e.catalog.Inverters, panels),
		GelBank:              SizeGelBank(e.catalog.Batteries.Gel, annualDemand),
		LithiumBank:          SizeLithiumBank(e.catalog.Batteries.Lithium, annualDemand),
		Mounting:             SizeMounting(e.catalog.Mounting, reference),
		Financial:            Summarize(e.catalog, reference, in.MonthlyDemandKWh, in.UnitEnergyCost),
		Environmental:        impact,
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("zone", in.Zone).
		Int("reference_panels", reference).
		Str("project_cost", result.Financial.ProjectCost.String()).
		Dur("duration", time.Since(start)).
		Msg("estimate complete")

	return result, nil
}

func cloneCatalog(c Catalog) Catalog {
	out := c
	out.Zones = append([]Zone(nil), c.Zones...)
	out.Panels.ClassesW = append([]int(nil), c.Panels.ClassesW...)
	out.Inverters = append([]InverterSpec(nil), c.Inverters...)
	out.Batteries.Gel.ClassesAh = append([]int(nil), c.Batteries.Gel.ClassesAh...)
	out.Batteries.Lithium.ClassesAh = append([]int(nil), c.Batteries.Lithium.ClassesAh...)
	return out
}
