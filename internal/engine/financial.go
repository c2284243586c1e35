package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summarize computes the money figures and the minimum roof area for a project
// of referenceCount panels. Savings are computed in decimal from the monthly demand.
func Summarize(c Catalog, referenceCount int, monthlyDemandKWh, unitEnergyCost float64) FinancialSummary {
	cost := c.Pricing.CostPerKWp.Mul(decimal.NewFromInt(int64(referenceCount)))
	savings := decimal.NewFromFloat(monthlyDemandKWh).
		Mul(decimal.NewFromInt(MonthsPerYear)).
		Mul(decimal.NewFromFloat(unitEnergyCost))

	return FinancialSummary{
		Currency:      c.Currency,
		ProjectCost:   cost,
		AnnualSavings: savings,
		TaxReduction:  cost.Mul(c.Pricing.TaxReductionFraction),
		MinimumAreaM2: int(math.Ceil(float64(referenceCount) * c.Panels.AreaM2)),
	}
}
