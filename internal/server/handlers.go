package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/observability"
	"github.com/rshade/solarsizer/internal/report"
)

// Multipart field names for invoice uploads.
const (
	FieldInvoiceFront = "invoice_front"
	FieldInvoiceBack  = "invoice_back"
)

type handler struct {
	engine    *engine.Engine
	estimator observability.Estimator
	issuer    *report.Issuer
	extractor *invoice.Extractor
	brands    BrandResolver
	metrics   *observability.Metrics
	maxUpload int64
}

func newHandler(deps Dependencies) *handler {
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	brands := deps.Brands
	if brands == nil {
		brands = func(string) (report.Brand, error) { return report.Brand{}, nil }
	}
	return &handler{
		engine:    deps.Engine,
		estimator: observability.Instrument(deps.Engine, deps.Metrics),
		issuer:    deps.Issuer,
		extractor: deps.Extractor,
		brands:    brands,
		metrics:   deps.Metrics,
		maxUpload: maxUpload,
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type zoneResponse struct {
	Name         string  `json:"name"`
	MonthlyYield float64 `json:"monthly_yield"`
	AnnualYield  float64 `json:"annual_yield"`
}

func (h *handler) zones(c *gin.Context) {
	zones := h.engine.Catalog().Zones
	out := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneResponse{Name: z.Name, MonthlyYield: z.MonthlyYield, AnnualYield: z.AnnualYield()})
	}
	c.JSON(http.StatusOK, gin.H{"zones": out})
}

func (h *handler) estimate(c *gin.Context) {
	var in engine.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}

	result, err := h.estimator.Estimate(c.Request.Context(), in)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) quote(c *gin.Context) {
	if h.issuer == nil {
		respondError(c, http.StatusServiceUnavailable, codeInternal, "quotes are not configured")
		return
	}

	in, err := formInput(c)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	area, err := formFloat(c, "area_m2", false)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	brand, err := h.brands(c.PostForm("brand"))
	if err != nil {
		respondError(c, http.StatusBadRequest, codeUnknownBrand, err.Error())
		return
	}

	ctx := c.Request.Context()
	doc, err := h.issuer.Issue(ctx, report.Request{
		Input: in,
		Client: report.Client{
			Name:         c.PostForm("client"),
			Project:      c.PostForm("project"),
			Phone:        c.PostForm("phone"),
			Email:        c.PostForm("email"),
			AdvisorEmail: c.PostForm("advisor_email"),
			Location:     c.PostForm("location"),
			AreaM2:       area,
		},
		Brand: brand,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}
	h.metrics.QuoteIssued()

	var buf bytes.Buffer
	if err = report.RenderPDF(&buf, doc); err != nil {
		respondError(c, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(doc.Ticket.Number)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

type invoiceResponse struct {
	Fields invoice.Fields       `json:"fields"`
	Reply  string               `json:"reply"`
	Result *engine.SizingResult `json:"result"`
}

func (h *handler) invoice(c *gin.Context) {
	if h.extractor == nil {
		respondError(c, http.StatusServiceUnavailable, codeUnavailable, "invoice extraction is not configured")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	docs := make([]invoice.Document, 0, 2)
	for _, field := range []string{FieldInvoiceFront, FieldInvoiceBack} {
		doc, status, code, err := readUpload(c, field)
		if err != nil {
			respondError(c, status, code, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	ctx := c.Request.Context()
	extracted, err := h.extractor.Extract(ctx, docs...)
	h.metrics.ObserveInvoice(err)
	if err != nil {
		respondExtractionError(c, err)
		return
	}

	result, err := h.estimator.Estimate(ctx, extracted.Fields.Input())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Fields: extracted.Fields, Reply: extracted.Reply, Result: result})
}

func readUpload(c *gin.Context, field string) (invoice.Document, int, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return invoice.Document{}, http.StatusRequestEntityTooLarge, codeRequestTooBig,
				fmt.Errorf("upload exceeds %d bytes", tooBig.Limit)
		}
		return invoice.Document{}, http.StatusBadRequest, codeMissingField,
			fmt.Errorf("%s is required", field)
	}
	f, err := fh.Open()
	if err != nil {
		return invoice.Document{}, http.StatusBadRequest, codeInvalidInput,
			fmt.Errorf("unable to read %s", field)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return invoice.Document{}, http.StatusBadRequest, codeInvalidInput,
			fmt.Errorf("unable to read %s", field)
	}
	if len(data) == 0 {
		return invoice.Document{}, http.StatusBadRequest, codeInvalidInput,
			fmt.Errorf("%s is empty", field)
	}
	return invoice.Document{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, 0, "", nil
}

func formInput(c *gin.Context) (engine.ProjectInput, error) {
	zone := strings.TrimSpace(c.PostForm("zone"))
	if zone == "" {
		return engine.ProjectInput{}, fmt.Errorf("%w: zone", report.ErrMissingField)
	}
	demand, err := formFloat(c, "monthly_demand_kwh", true)
	if err != nil {
		return engine.ProjectInput{}, err
	}
	cost, err := formFloat(c, "unit_energy_cost", true)
	if err != nil {
		return engine.ProjectInput{}, err
	}
	return engine.ProjectInput{Zone: zone, MonthlyDemandKWh: demand, UnitEnergyCost: cost}, nil
}

func formFloat(c *gin.Context, name string, required bool) (float64, error) {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%w: %s", report.ErrMissingField, name)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", engine.ErrInvalidInput, name)
	}
	return v, nil
}
