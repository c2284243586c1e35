package invoice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/solarsizer/internal/engine"
)

// Fields are the estimate inputs read from an invoice.
type Fields struct {
	// RawZone is the zone exactly as the model wrote it.
	RawZone          string  `json:"raw_zone"`
	Zone             string  `json:"zone"`
	MonthlyDemandKWh float64 `json:"monthly_demand_kwh"`
	UnitEnergyCost   float64 `json:"unit_energy_cost"`
}

// Input converts the fields into engine input.
func (f Fields) Input() engine.ProjectInput {
	return engine.ProjectInput{
		Zone:             f.Zone,
		MonthlyDemandKWh: f.MonthlyDemandKWh,
		UnitEnergyCost:   f.UnitEnergyCost,
	}
}

//nolint:gochecknoglobals // Immutable replacers.
var (
	demandCleaner = strings.NewReplacer("kWh/mes", "", "kWh", "", ",", "")
	costCleaner   = strings.NewReplacer("COP", "", "$", "", ",", "")
)

// ParseFields reads "key: value" lines from a model reply.
//
// The zone keeps only the text after the last "-" so replies such as
// "Medellín, Antioquia - Región Andina" resolve to the region. Units,
// currency symbols and commas are stripped from the numbers.
func ParseFields(reply string) (Fields, error) {
	values := make(map[string]string)
	for _, line := range strings.Split(reply, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	var f Fields
	raw, err := required(values, KeyZone)
	if err != nil {
		return Fields{}, err
	}
	f.RawZone = raw
	parts := strings.Split(raw, "-")
	f.Zone = strings.TrimSpace(parts[len(parts)-1])
	if f.Zone == "" {
		return Fields{}, fmt.Errorf("%w: %s is empty after cleaning %q", ErrInvalidField, KeyZone, raw)
	}

	if f.MonthlyDemandKWh, err = number(values, KeyDemand, demandCleaner); err != nil {
		return Fields{}, err
	}
	if f.UnitEnergyCost, err = number(values, KeyCost, costCleaner); err != nil {
		return Fields{}, err
	}
	return f, nil
}

func required(values map[string]string, key string) (string, error) {
	v := values[key]
	if v == "" || strings.EqualFold(v, "No disponible") {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return v, nil
}

func number(values map[string]string, key string, cleaner *strings.Replacer) (float64, error) {
	raw, err := required(values, key)
	if err != nil {
		return 0, err
	}
	cleaned := strings.TrimSpace(cleaner.Replace(raw))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidField, key, raw)
	}
	return n, nil
}
