package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.solarsizer/config.yaml for syntax and semantic correctness.

This includes:
- Catalog validation (zones, panel tiers, inverter tiers, batteries, pricing)
- Logging level and format
- Output format and upload limits
- Quote brand and maintenance fee`,
		Example: `  # Validate current configuration
  solarsizer config validate

  # Validate and show detailed information
  solarsizer config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate validates the configuration the command is running with,
// so a --config overlay is checked together with the base file.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()
	if err := cfg.LoadError(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.Path())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	cmd.Printf("  Default brand: %s\n", cfg.Quotes.DefaultBrand)

	cmd.Printf("  Zones: %d\n", len(cfg.Catalog.Zones))
	for _, name := range cfg.Catalog.ZoneNames() {
		cmd.Printf("    - %s\n", name)
	}
	cmd.Printf("  Panel classes: %v W\n", cfg.Catalog.Panels.ClassesW)
	cmd.Printf("  Inverter tiers: %d\n", len(cfg.Catalog.Inverters))

	if cfg.Extraction.APIKey == "" {
		cmd.Println("  Invoice extraction: disabled (no API key)")
	} else {
		cmd.Printf("  Invoice extraction: %s\n", cfg.Extraction.Model)
	}
}
