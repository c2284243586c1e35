package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/quote"
)

func guajiraResult(t *testing.T) *engine.SizingResult {
	t.Helper()
	e, err := engine.New(engine.DefaultCatalog())
	require.NoError(t, err)
	r, err := e.Estimate(context.Background(), engine.ProjectInput{
		Zone:             "Desierto de la Guajira",
		MonthlyDemandKWh: 500,
		UnitEnergyCost:   800,
	})
	require.NoError(t, err)
	return r
}

func testDocument(t *testing.T) Document {
	t.Helper()
	return Document{
		Ticket: quote.Ticket{Number: 42, IssuedAt: time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)},
		Client: Client{
			Name:         "Ana Pérez",
			Project:      "Finca El Sol",
			Phone:        "3001234567",
			Email:        "ana@example.com",
			AdvisorEmail: "asesor@example.com",
			Location:     "Riohacha",
			AreaM2:       40,
		},
		Brand:          Brand{Name: "Solar Sizer", LegalID: "900.000.000-1", Website: "www.example.com"},
		Result:         guajiraResult(t),
		MaintenanceFee: decimal.NewFromInt(315900),
	}
}

func TestSections(t *testing.T) {
	sections := Sections(guajiraResult(t))
	require.Len(t, sections, 6)

	titles := make([]string, 0, len(sections))
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{TitleGeneral, TitlePanels, TitleInverters, TitleGel, TitleLithium, TitleMounting}, titles)

	general := sections[0].Rows
	assert.Equal(t, Row{Label: "Costo Proyecto", Value: "$375.320"}, general[0])
	assert.Equal(t, Row{Label: "Ahorro Anual", Value: "$4.800.000"}, general[1])
	assert.Equal(t, Row{Label: "Disminución de Renta", Value: "$187.660"}, general[2])
	assert.Equal(t, Row{Label: "Área mínima requerida", Value: "2 m²"}, general[3])
	assert.Equal(t, Row{Label: "Reducción de CO2", Value: "4.20 t CO2"}, general[4])
	assert.Equal(t, Row{Label: "Equivalente en km no recorridos", Value: "16.800 km"}, general[5])

	panels := sections[1].Rows
	assert.Equal(t, Row{Label: "Energía anual panel 400W", Value: "10.512 kWh"}, panels[0])
	assert.Equal(t, Row{Label: "Número de paneles de 400W", Value: "1"}, panels[1])

	gel := sections[3].Rows
	assert.Equal(t, Row{Label: "Capacidad del banco", Value: "3 Ah"}, gel[0])
	assert.Len(t, gel, 5)

	assert.Equal(t, Row{Label: "Inversores 12.000W (paneles 605W)", Value: "1"}, sections[2].Rows[2])
}

func TestDocumentValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantMsg string
	}{
		{name: "missing client", mutate: func(d *Document) { d.Client.Name = "" }, wantMsg: "client"},
		{name: "blank phone", mutate: func(d *Document) { d.Client.Phone = "  " }, wantMsg: "phone"},
		{name: "missing advisor", mutate: func(d *Document) { d.Client.AdvisorEmail = "" }, wantMsg: "advisor_email"},
		{name: "missing result", mutate: func(d *Document) { d.Result = nil }, wantMsg: "result"},
		{name: "missing number", mutate: func(d *Document) { d.Ticket.Number = 0 }, wantMsg: "quote number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDocument(t)
			tt.mutate(&doc)
			err := doc.Validate()
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	require.NoError(t, testDocument(t).Validate())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "cotizacion_7.pdf", Filename(7))
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, testDocument(t)))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, reader.NumPage(), 3)
}

func TestRenderPDF_InvalidDocument(t *testing.T) {
	doc := testDocument(t)
	doc.Client.Email = ""

	var buf bytes.Buffer
	err := RenderPDF(&buf, doc)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Zero(t, buf.Len())
}

func TestRenderPDF_MissingLogo(t *testing.T) {
	doc := testDocument(t)
	doc.Brand.LogoPath = "/nonexistent/logo.png"

	var buf bytes.Buffer
	require.Error(t, RenderPDF(&buf, doc))
}
