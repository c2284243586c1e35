package report

import (
	"fmt"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/greenops"
)

// Section titles, shared by the PDF and the CLI table.
const (
	TitleGeneral   = "Resultados Generales"
	TitlePanels    = "Paneles"
	TitleInverters = "Inversores"
	TitleGel       = "Baterías Gel"
	TitleLithium   = "Baterías Litio"
	TitleMounting  = "Estructura"
)

// Row is one label/value line of a section.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled group of rows.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Sections flattens a sizing result into display rows.
func Sections(r *engine.SizingResult) []Section {
	general := Section{Title: TitleGeneral, Rows: []Row{
		{Label: "Costo Proyecto", Value: FormatMoney(r.Financial.ProjectCost)},
		{Label: "Ahorro Anual", Value: FormatMoney(r.Financial.AnnualSavings)},
		{Label: "Disminución de Renta", Value: FormatMoney(r.Financial.TaxReduction)},
		{Label: "Área mínima requerida", Value: fmt.Sprintf("%d m²", r.Financial.MinimumAreaM2)},
		{Label: "Reducción de CO2", Value: greenops.FormatTonnes(r.Environmental.CO2AvoidedTonnes)},
		{Label: "Equivalente en km no recorridos", Value: FormatInt(r.Environmental.EquivalentKmAvoided) + " km"},
	}}

	panels := Section{Title: TitlePanels}
	for _, p := range r.Panels {
		panels.Rows = append(panels.Rows,
			Row{Label: fmt.Sprintf("Energía anual panel %dW", p.WattagePeak), Value: FormatQuantity(p.EnergyPerPanelKWh) + " kWh"},
			Row{Label: fmt.Sprintf("Número de paneles de %dW", p.WattagePeak), Value: FormatInt(int64(p.Count))},
		)
	}

	inverters := Section{Title: TitleInverters}
	for _, inv := range r.Inverters {
		inverters.Rows = append(inverters.Rows, Row{
			Label: fmt.Sprintf("Inversores %sW (paneles %dW)", FormatInt(int64(inv.CapacityW)), inv.PanelWattage),
			Value: FormatInt(int64(inv.Count)),
		})
	}

	return []Section{
		general,
		panels,
		inverters,
		bankSection(TitleGel, "Gel", r.GelBank),
		bankSection(TitleLithium, "Litio", r.LithiumBank),
		{Title: TitleMounting, Rows: []Row{
			{Label: "Rieles", Value: FormatInt(int64(r.Mounting.Rails))},
			{Label: "Mid clamps", Value: FormatInt(int64(r.Mounting.MidClamps))},
			{Label: "End clamps", Value: FormatInt(int64(r.Mounting.EndClamps))},
		}},
	}
}

func bankSection(title, label string, bank engine.BatteryBank) Section {
	s := Section{Title: title, Rows: []Row{
		{Label: "Capacidad del banco", Value: FormatInt(int64(bank.CapacityAh)) + " Ah"},
	}}
	for _, u := range bank.Units {
		s.Rows = append(s.Rows, Row{
			Label: fmt.Sprintf("Baterías %s %dAh", label, u.CapacityAh),
			Value: FormatInt(int64(u.Count)),
		})
	}
	return s
}
