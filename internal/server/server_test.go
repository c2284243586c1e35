package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/observability"
	"github.com/rshade/solarsizer/internal/quote"
	"github.com/rshade/solarsizer/internal/report"
)

const extractionReply = "Zona del Proyecto: Riohacha - Desierto de la Guajira\n" +
	"Consumo promedio mensual de energía: 500 kWh/mes\n" +
	"Costo del kWh: $800 COP"

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Complete(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

type fixture struct {
	router  *gin.Engine
	store   *quote.Store
	metrics *observability.Metrics
	logs    *bytes.Buffer
}

func newFixture(t *testing.T, llm invoice.Client) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng, err := engine.New(engine.DefaultCatalog())
	require.NoError(t, err)
	store, err := quote.NewStore(filepath.Join(t.TempDir(), "quotes.json"),
		quote.WithClock(clockwork.NewFakeClockAt(time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC))))
	require.NoError(t, err)
	metrics, reg := observability.NewMetricsForTesting()

	var extractor *invoice.Extractor
	if llm != nil {
		extractor = invoice.NewExtractor(llm, eng.ZoneNames())
	}

	logs := &bytes.Buffer{}
	router := NewRouter(Dependencies{
		Engine: eng,
		Issuer: &report.Issuer{
			Estimator: observability.Instrument(eng, metrics),
			Tickets:   store,
		},
		Extractor: extractor,
		Brands: func(name string) (report.Brand, error) {
			if name == "" || name == "default" {
				return report.Brand{Name: "Solar Sizer"}, nil
			}
			return report.Brand{}, errors.New("unknown brand " + name)
		},
		Metrics:  metrics,
		Gatherer: reg,
		Logger:   zerolog.New(logs),
	})
	return fixture{router: router, store: store, metrics: metrics, logs: logs}
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealthAndRequestID(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Len(t, rec.Header().Get(headerRequestID), 26)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec = f.do(req)
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
	assert.Contains(t, f.logs.String(), `"request_id":"abc-123"`)
}

func TestZones(t *testing.T) {
	f := newFixture(t, nil)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/v1/zones", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Zones []zoneResponse `json:"zones"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Zones, 6)
	assert.Equal(t, "Costa Caribe", body.Zones[0].Name)
	assert.InDelta(t, 19716.0, body.Zones[0].AnnualYield, 1e-9)
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "guajira",
			body:     `{"zone":"Desierto de la Guajira","monthly_demand_kwh":500,"unit_energy_cost":800}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown zone",
			body:     `{"zone":"Atlántida","monthly_demand_kwh":500,"unit_energy_cost":800}`,
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  codeZoneNotFound,
		},
		{
			name:     "negative demand",
			body:     `{"zone":"Amazonía","monthly_demand_kwh":-10,"unit_energy_cost":800}`,
			wantCode: http.StatusBadRequest,
			wantErr:  codeInvalidInput,
		},
		{
			name:     "malformed body",
			body:     `{"zone":`,
			wantCode: http.StatusBadRequest,
			wantErr:  codeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := f.do(req)

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
				return
			}
			var result engine.SizingResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			assert.Equal(t, "4800000", result.Financial.AnnualSavings.String())
			assert.Equal(t, "375320", result.Financial.ProjectCost.String())
			n, ok := result.PanelCount(400)
			assert.True(t, ok)
			assert.Equal(t, 1, n)
		})
	}
}

func TestEstimate_CountsOutcomes(t *testing.T) {
	f := newFixture(t, nil)
	for _, body := range []string{
		`{"zone":"Amazonía","monthly_demand_kwh":100,"unit_energy_cost":800}`,
		`{"zone":"Atlántida","monthly_demand_kwh":100,"unit_energy_cost":800}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.do(req)
	}
	assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.Estimates.WithLabelValues(observability.OutcomeSuccess)), 1e-9)
	assert.InDelta(t, 1.0,
		testutil.ToFloat64(f.metrics.Estimates.WithLabelValues(observability.OutcomeZoneNotFound)), 1e-9)
}

func quoteForm() url.Values {
	return url.Values{
		"client":             {"Ana Pérez"},
		"project":            {"Finca El Sol"},
		"phone":              {"3001234567"},
		"email":              {"ana@example.com"},
		"advisor_email":      {"asesor@example.com"},
		"location":           {"Riohacha"},
		"zone":               {"Desierto de la Guajira"},
		"monthly_demand_kwh": {"500"},
		"unit_energy_cost":   {"800"},
		"area_m2":            {"40"},
	}
}

func postForm(f fixture, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(req)
}

func TestQuote(t *testing.T) {
	f := newFixture(t, nil)

	rec := postForm(f, quoteForm())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cotizacion_1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = postForm(f, quoteForm())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="cotizacion_2.pdf"`, rec.Header().Get("Content-Disposition"))

	current, err := f.store.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, current)
	assert.InDelta(t, 2.0, testutil.ToFloat64(f.metrics.QuotesIssued), 1e-9)
}

func TestQuote_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(url.Values)
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{
			name:     "missing client",
			mutate:   func(v url.Values) { v.Del("client") },
			wantCode: http.StatusBadRequest,
			wantErr:  codeMissingField,
			wantMsg:  "client",
		},
		{
			name:     "missing demand",
			mutate:   func(v url.Values) { v.Del("monthly_demand_kwh") },
			wantCode: http.StatusBadRequest,
			wantErr:  codeMissingField,
			wantMsg:  "monthly_demand_kwh",
		},
		{
			name:     "non numeric cost",
			mutate:   func(v url.Values) { v.Set("unit_energy_cost", "ochocientos") },
			wantCode: http.StatusBadRequest,
			wantErr:  codeInvalidInput,
			wantMsg:  "unit_energy_cost",
		},
		{
			name:     "unknown zone",
			mutate:   func(v url.Values) { v.Set("zone", "Atlántida") },
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  codeZoneNotFound,
			wantMsg:  "Atlántida",
		},
		{
			name:     "unknown brand",
			mutate:   func(v url.Values) { v.Set("brand", "acme") },
			wantCode: http.StatusBadRequest,
			wantErr:  codeUnknownBrand,
			wantMsg:  "acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			form := quoteForm()
			tt.mutate(form)

			rec := postForm(f, form)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, tt.wantErr, body.Code)
			assert.Contains(t, body.Message, tt.wantMsg)

			current, err := f.store.Current()
			require.NoError(t, err)
			assert.Zero(t, current, "a failed request must not consume a quote number")
		})
	}
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func postInvoice(t *testing.T, f fixture, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", body)
	req.Header.Set("Content-Type", contentType)
	return f.do(req)
}

func TestInvoice(t *testing.T) {
	f := newFixture(t, stubLLM{reply: extractionReply})

	rec := postInvoice(t, f, map[string]string{
		FieldInvoiceFront: "Factura de energía\nConsumo 500 kWh",
		FieldInvoiceBack:  "Valor kWh 800",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body invoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Desierto de la Guajira", body.Fields.Zone)
	assert.InDelta(t, 500.0, body.Fields.MonthlyDemandKWh, 1e-9)
	require.NotNil(t, body.Result)
	assert.Equal(t, "4800000", body.Result.Financial.AnnualSavings.String())
	assert.InDelta(t, 1.0,
		testutil.ToFloat64(f.metrics.InvoiceExtractions.WithLabelValues(observability.OutcomeSuccess)), 1e-9)
}

func TestInvoice_Errors(t *testing.T) {
	tests := []struct {
		name     string
		llm      invoice.Client
		files    map[string]string
		wantCode int
		wantErr  string
	}{
		{
			name:     "extraction not configured",
			files:    map[string]string{FieldInvoiceFront: "a", FieldInvoiceBack: "b"},
			wantCode: http.StatusServiceUnavailable,
			wantErr:  codeUnavailable,
		},
		{
			name:     "missing back",
			llm:      stubLLM{reply: extractionReply},
			files:    map[string]string{FieldInvoiceFront: "a"},
			wantCode: http.StatusBadRequest,
			wantErr:  codeMissingField,
		},
		{
			name:     "empty front",
			llm:      stubLLM{reply: extractionReply},
			files:    map[string]string{FieldInvoiceFront: "", FieldInvoiceBack: "b"},
			wantCode: http.StatusBadRequest,
			wantErr:  codeInvalidInput,
		},
		{
			name:     "unreadable reply",
			llm:      stubLLM{reply: "Zona del Proyecto: No disponible"},
			files:    map[string]string{FieldInvoiceFront: "a", FieldInvoiceBack: "b"},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  codeUnreadable,
		},
		{
			name:     "llm failure",
			llm:      stubLLM{err: errors.New("connection refused")},
			files:    map[string]string{FieldInvoiceFront: "a", FieldInvoiceBack: "b"},
			wantCode: http.StatusBadGateway,
			wantErr:  codeUpstream,
		},
		{
			name: "zone outside catalog",
			llm: stubLLM{reply: "Zona del Proyecto: Atlántida\n" +
				"Consumo promedio mensual de energía: 500\nCosto del kWh: 800"},
			files:    map[string]string{FieldInvoiceFront: "a", FieldInvoiceBack: "b"},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  codeZoneNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.llm)
			rec := postInvoice(t, f, tt.files)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantErr, decodeError(t, rec).Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	f.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `solarsizer_http_requests_total{route="/api/v1/health",status="200"} 1`)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestID(zerolog.Nop()), recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, codeInternal, decodeError(t, rec).Code)
}

func TestServer_Run(t *testing.T) {
	eng, err := engine.New(engine.DefaultCatalog())
	require.NoError(t, err)
	srv := New("127.0.0.1:0", Dependencies{Engine: eng, Logger: zerolog.Nop()})
	assert.Equal(t, "127.0.0.1:0", srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
