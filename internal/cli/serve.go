package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/observability"
	"github.com/rshade/solarsizer/internal/report"
	"github.com/rshade/solarsizer/internal/server"
)

const bytesPerMB = 1 << 20

// NewServeCmd creates the serve command, which runs the HTTP API until interrupted.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves estimates, zone listings, PDF quotes and invoice extraction over HTTP,
with Prometheus metrics on /metrics. Without an extraction API key the
invoice endpoint answers 503 and everything else keeps working.`,
		Example: `  solarsizer serve
  solarsizer serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = config.GetServerAddr()
			}
			srv, err := newServer(addr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr or "+config.EnvAddr+")")

	return cmd
}

// newServer wires the HTTP API from the global configuration.
func newServer(addr string) (*server.Server, error) {
	cfg := config.GetGlobalConfig()

	eng, err := newEngine()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	issuer, err := newIssuer(cfg, observability.Instrument(eng, metrics))
	if err != nil {
		return nil, err
	}

	extractor, err := newExtractor(cfg, eng.ZoneNames())
	if errors.Is(err, invoice.ErrMissingAPIKey) {
		logger.Warn().Msg("invoice extraction disabled: no API key configured")
	} else if err != nil {
		return nil, err
	}

	return server.New(addr, server.Dependencies{
		Engine:    eng,
		Issuer:    issuer,
		Extractor: extractor,
		Brands: func(name string) (report.Brand, error) {
			return resolveBrand(cfg, name)
		},
		Metrics:        metrics,
		Gatherer:       reg,
		Logger:         baseLogger,
		MaxUploadBytes: int64(cfg.Server.MaxUploadMB) * bytesPerMB,
	}), nil
}
