package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rshade/solarsizer/internal/greenops"
)

const (
	fontFamily   = "Arial"
	rowHeight    = 8.0
	titleHeight  = 10.0
	pageMargin   = 10.0
	breakMargin  = 15.0
	paymentWidth = 130.0
	logoWidth    = 100.0
)

// paymentTerms is the payment schedule printed on every quote.
//
//nolint:gochecknoglobals // Fixed table.
var paymentTerms = []Row{
	{Label: "Anticipo", Value: "50%"},
	{Label: "Entrega de materiales", Value: "40%"},
	{Label: "RETIE", Value: "10%"},
}

// RenderPDF writes the quote document to w.
func RenderPDF(w io.Writer, doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Cotización #%d", doc.Ticket.Number), true)
	pdf.SetAuthor(doc.Brand.Name, true)
	pdf.SetCreationDate(doc.Ticket.IssuedAt)
	pdf.SetAutoPageBreak(true, breakMargin)

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.header(doc)
	r.clientTable(doc.Client)
	for _, s := range Sections(doc.Result) {
		r.section(s)
	}
	r.payment(doc)

	pdf.AddPage()
	r.conditions(doc)
	r.billedBy(doc.Brand)

	pdf.AddPage()
	r.benefits(doc)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering quote %d: %w", doc.Ticket.Number, err)
	}
	return nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) pageWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w
}

func (r *renderer) header(doc Document) {
	r.pdf.AddPage()
	if doc.Brand.LogoPath != "" {
		r.pdf.ImageOptions(doc.Brand.LogoPath, (r.pageWidth()-logoWidth)/2, pageMargin, logoWidth, 0,
			true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		r.pdf.Ln(5)
	}

	r.pdf.SetFont(fontFamily, "B", 18)
	r.pdf.CellFormat(0, titleHeight, r.tr(doc.Brand.Name), "", 1, "C", false, 0, "")
	r.pdf.SetFont(fontFamily, "B", 16)
	r.pdf.CellFormat(0, titleHeight, r.tr(fmt.Sprintf("Cotización #%d", doc.Ticket.Number)), "", 1, "C", false, 0, "")
	r.pdf.CellFormat(0, titleHeight, r.tr("Cotización de Proyecto de Energía Solar"), "", 1, "C", false, 0, "")
	r.pdf.SetFont(fontFamily, "I", 12)
	r.pdf.CellFormat(0, titleHeight, "Fecha: "+doc.Ticket.Date(), "", 1, "C", false, 0, "")
	r.pdf.Ln(titleHeight)
}

// title draws a full-width white-on-red band.
func (r *renderer) title(text string) {
	r.pdf.SetFillColor(255, 0, 0)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont(fontFamily, "B", 14)
	r.pdf.CellFormat(0, titleHeight, r.tr(text), "", 1, "C", true, 0, "")
	r.pdf.Ln(5)
	r.pdf.SetTextColor(0, 0, 0)
}

func (r *renderer) table(head [2]string, rows []Row) {
	col := (r.pageWidth() - 2*pageMargin) / 2
	r.pdf.SetFont(fontFamily, "B", 12)
	r.pdf.CellFormat(col, rowHeight, r.tr(head[0]), "1", 0, "C", false, 0, "")
	r.pdf.CellFormat(col, rowHeight, r.tr(head[1]), "1", 1, "C", false, 0, "")

	r.pdf.SetFont(fontFamily, "", 12)
	for _, row := range rows {
		r.pdf.CellFormat(col, rowHeight, r.tr(row.Label), "1", 0, "L", false, 0, "")
		r.pdf.CellFormat(col, rowHeight, r.tr(row.Value), "1", 1, "C", false, 0, "")
	}
	r.pdf.Ln(titleHeight)
}

func (r *renderer) clientTable(c Client) {
	r.title("Datos proporcionados por el Cliente")
	r.table([2]string{"Campo", "Valor"}, []Row{
		{Label: "Cliente", Value: c.Name},
		{Label: "Correo", Value: c.Email},
		{Label: "Proyecto", Value: c.Project},
		{Label: "Celular", Value: c.Phone},
		{Label: "Correo Asesor", Value: c.AdvisorEmail},
		{Label: "Ubicación", Value: c.Location},
		{Label: "Área Disponible", Value: FormatQuantity(c.AreaM2) + " m²"},
	})
}

func (r *renderer) section(s Section) {
	r.title(s.Title)
	r.table([2]string{"Concepto", "Valor"}, s.Rows)
}

func (r *renderer) payment(doc Document) {
	r.title("Forma de Pago")
	col1, col2 := paymentWidth*0.7, paymentWidth*0.3
	x := (r.pageWidth() - paymentWidth) / 2

	r.pdf.SetFont(fontFamily, "", 12)
	r.pdf.SetX(x)
	r.pdf.CellFormat(col1, titleHeight, "Concepto", "1", 0, "C", false, 0, "")
	r.pdf.CellFormat(col2, titleHeight, "Porcentaje", "1", 1, "C", false, 0, "")
	for _, term := range paymentTerms {
		r.pdf.SetX(x)
		r.pdf.CellFormat(col1, titleHeight, r.tr(term.Label), "1", 0, "C", false, 0, "")
		r.pdf.CellFormat(col2, titleHeight, term.Value, "1", 1, "C", false, 0, "")
	}
	r.pdf.Ln(titleHeight)

	r.title("Mantenimiento Anual")
	r.pdf.SetFont(fontFamily, "", 12)
	r.pdf.CellFormat(0, titleHeight, "Monto: "+FormatMoney(doc.MaintenanceFee), "1", 1, "C", false, 0, "")
	r.pdf.Ln(5)
	r.pdf.CellFormat(0, titleHeight, r.tr("Condición: Indexado IPC"), "1", 1, "C", false, 0, "")
	r.pdf.Ln(titleHeight)
}

func (r *renderer) conditions(doc Document) {
	conditions := doc.Conditions
	if len(conditions) == 0 {
		conditions = DefaultConditions()
	}

	r.title("Condiciones del Proyecto")
	r.pdf.SetFont(fontFamily, "", 9)
	r.pdf.MultiCell(0, 6, r.tr("- "+strings.Join(conditions, "\n- ")), "1", "J", false)
	r.pdf.Ln(5)

	r.pdf.SetFont(fontFamily, "I", 12)
	r.pdf.SetTextColor(255, 0, 0)
	notice := "Cualquier inquietud adicional con gusto será atendida. " +
		"Con la solicitud de esta cotización autorizas el uso de tus datos personales."
	if doc.Brand.Website != "" {
		notice += " Más información en " + doc.Brand.Website + "."
	}
	r.pdf.MultiCell(0, titleHeight, r.tr(notice), "", "L", false)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Ln(5)
}

func (r *renderer) billedBy(b Brand) {
	r.pdf.SetFont(fontFamily, "B", 12)
	r.pdf.CellFormat(0, titleHeight, "FACTURADO POR:", "", 1, "C", false, 0, "")
	r.pdf.SetFont(fontFamily, "", 12)
	r.pdf.CellFormat(0, rowHeight, r.tr(b.Name), "", 1, "C", false, 0, "")
	if b.LegalID != "" {
		r.pdf.CellFormat(0, rowHeight, "NIT: "+b.LegalID, "", 1, "C", false, 0, "")
	}
}

func (r *renderer) benefits(doc Document) {
	res := doc.Result
	r.title("Beneficios del Proyecto")
	r.pdf.SetFont(fontFamily, "", 11)

	text := fmt.Sprintf(`1. Ahorro en tu factura de energía
   - El ahorro anual estimado es %s.

2. Energía propia y protección contra alzas de tarifa
   - Los paneles generan electricidad por más de 25 años.

3. Inversión con retorno
   - La inversión estimada es %s y puedes deducir %s de tu renta.

4. Impacto ambiental positivo
   - Dejarás de emitir aproximadamente %s toneladas de CO2 al año.
   - Equivale a no recorrer %s km al año en un auto de combustión.

5. Incentivos tributarios
   - La Ley 1715 permite deducir hasta el 50%% de la inversión, con exención de IVA y aranceles en equipos solares.`,
		FormatMoney(res.Financial.AnnualSavings),
		FormatMoney(res.Financial.ProjectCost),
		FormatMoney(res.Financial.TaxReduction),
		greenops.FormatFloat(res.Environmental.CO2AvoidedTonnes, greenops.TonnesPrecision),
		FormatInt(res.Environmental.EquivalentKmAvoided),
	)
	r.pdf.MultiCell(0, rowHeight, r.tr(text), "1", "J", false)
}
