// Package server exposes the sizing engine, quote renderer and invoice
// extractor over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/observability"
	"github.com/rshade/solarsizer/internal/report"
)

const (
	defaultAddr      = ":8080"
	defaultMaxUpload = 10 << 20
	shutdownTimeout  = 10 * time.Second
)

// BrandResolver looks up a brand profile by name; "" selects the default brand.
type BrandResolver func(name string) (report.Brand, error)

// Dependencies are the collaborators behind the HTTP handlers.
type Dependencies struct {
	Engine *engine.Engine
	Issuer *report.Issuer

	// Extractor is optional; without it /invoices answers 503.
	Extractor *invoice.Extractor
	Brands    BrandResolver

	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger

	MaxUploadBytes int64
}

// Server is the HTTP API.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		requestID(deps.Logger),
		accessLog(deps.Metrics),
		recovery(),
	)

	h := newHandler(deps)
	api := r.Group("/api/v1")
	api.GET("/health", h.health)
	api.GET("/zones", h.zones)
	api.POST("/estimates", h.estimate)
	api.POST("/quotes", h.quote)
	api.POST("/invoices", h.invoice)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return r
}

// New builds a server listening on addr.
func New(addr string, deps Dependencies) *Server {
	if addr == "" {
		addr = defaultAddr
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      2 * time.Minute,
			IdleTimeout:       60 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// ServeHTTP delegates to the router, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// Run serves until ctx is canceled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("component", "server").Str("addr", s.httpServer.Addr).Msg("http server starting")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Str("component", "server").Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
