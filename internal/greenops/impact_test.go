package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateImpact(t *testing.T) {
	tests := []struct {
		name       string
		annual     float64
		coverage   float64
		wantTonnes float64
		wantKm     int64
	}{
		{name: "500 kWh per month", annual: 6000, coverage: 100, wantTonnes: 4.2, wantKm: 16800},
		{name: "1000 kWh per month", annual: 12000, coverage: 100, wantTonnes: 8.4, wantKm: 33600},
		{name: "250 kWh per month", annual: 3000, coverage: 100, wantTonnes: 2.1, wantKm: 8400},
		{name: "tiny demand rounds tonnes to zero", annual: 6, coverage: 100, wantTonnes: 0, wantKm: 16},
		{name: "zero demand", annual: 0, coverage: 100, wantTonnes: 0, wantKm: 0},
		{name: "half coverage", annual: 6000, coverage: 50, wantTonnes: 2.1, wantKm: 8400},
		{name: "zero coverage", annual: 6000, coverage: 0, wantTonnes: 0, wantKm: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateImpact(tt.annual, tt.coverage, DefaultFactors())
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTonnes, got.CO2AvoidedTonnes, 1e-9)
			assert.Equal(t, tt.wantKm, got.EquivalentKmAvoided)
			assert.GreaterOrEqual(t, got.SolarEnergyKWh, 0.0)
		})
	}
}

func TestCalculateImpact_Errors(t *testing.T) {
	tests := []struct {
		name     string
		annual   float64
		coverage float64
		factors  Factors
		wantErr  error
	}{
		{name: "negative demand", annual: -120, coverage: 100, factors: DefaultFactors(), wantErr: ErrNegativeValue},
		{name: "NaN demand", annual: math.NaN(), coverage: 100, factors: DefaultFactors(), wantErr: ErrNegativeValue},
		{name: "infinite demand", annual: math.Inf(1), coverage: 100, factors: DefaultFactors(), wantErr: ErrNegativeValue},
		{name: "overflow", annual: 1e15, coverage: 100, factors: DefaultFactors(), wantErr: ErrCalculationOverflow},
		{name: "coverage above 100", annual: 6000, coverage: 101, factors: DefaultFactors(), wantErr: ErrCoverageOutOfRange},
		{name: "negative coverage", annual: 6000, coverage: -1, factors: DefaultFactors(), wantErr: ErrCoverageOutOfRange},
		{name: "zero factor", annual: 6000, coverage: 100, factors: Factors{CO2TonnesPerKm: 0.00025}, wantErr: ErrInvalidFactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateImpact(tt.annual, tt.coverage, tt.factors)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFactorsValidate(t *testing.T) {
	require.NoError(t, DefaultFactors().Validate())

	f := DefaultFactors()
	f.CoveragePercent = 120
	require.ErrorIs(t, f.Validate(), ErrCoverageOutOfRange)

	f = DefaultFactors()
	f.CO2TonnesPerKWh = -1
	require.ErrorIs(t, f.Validate(), ErrInvalidFactor)
}
