package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/logging"
)

// annotationToleratesBrokenConfig marks commands that must run even when the
// configuration file cannot be parsed, so the file can be regenerated.
const annotationToleratesBrokenConfig = "solarsizer/tolerates-broken-config"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations; baseLogger carries no component.
var (
	logger     zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration
	baseLogger zerolog.Logger //nolint:gochecknoglobals // Shared with the HTTP server
)

// NewRootCmd creates the root Cobra command for the solarsizer CLI.
// It loads configuration, wires up logging and tracing, and registers the
// estimate, zones, quote, invoice, serve and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult   *logging.LogPathResult
		overlayPath string
	)

	cmd := &cobra.Command{
		Use:          "solarsizer",
		Short:        "Solar installation sizing and quoting",
		Long:         "Solar Sizer: size panels, inverters, batteries and mounting for a solar project and issue PDF quotes",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, overlayPath); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&overlayPath, "config", "",
		"YAML file whose top-level sections replace those of the loaded configuration")
	cmd.AddCommand(
		NewEstimateCmd(), NewZonesCmd(), NewQuoteCmd(), NewInvoiceCmd(),
		NewServeCmd(), newConfigCmd(),
	)

	return cmd
}

// loadConfig reads the configuration, applies the --config overlay and
// installs the result as the global configuration. A configuration file that
// exists but cannot be read or parsed stops the command.
func loadConfig(cmd *cobra.Command, overlayPath string) error {
	cfg := config.New()
	if err := cfg.LoadError(); err != nil {
		if errors.Is(err, engine.ErrConfiguration) && !toleratesBrokenConfig(cmd) {
			return err
		}
		cmd.PrintErrf("Warning: using default configuration: %v\n", err)
	}
	if overlayPath != "" {
		if err := config.ShallowMergeYAML(cfg, overlayPath); err != nil {
			return err
		}
	}
	config.SetGlobalConfig(cfg)
	return nil
}

func toleratesBrokenConfig(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationToleratesBrokenConfig]
	return ok
}

const rootCmdExample = `  # Size a project in the Guajira desert
  solarsizer estimate --zone "Desierto de la Guajira" --demand 500 --cost 800

  # Explore inputs interactively
  solarsizer estimate --interactive

  # List supported zones
  solarsizer zones

  # Issue a PDF quote
  solarsizer quote --zone "Región Andina" --demand 350 --cost 720 \
    --client "Ana Pérez" --project "Casa Campestre" --phone 3001234567 \
    --email ana@example.com --advisor-email asesor@example.com

  # Read the inputs from an electricity invoice
  solarsizer invoice factura_frente.pdf factura_reverso.pdf

  # Start the HTTP API
  solarsizer serve --addr :8080

  # Initialize configuration
  solarsizer config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd(), NewConfigMigrateCmd())
	return cmd
}
