package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/solarsizer/internal/config"
)

const redacted = "********"

// NewConfigShowCmd prints the effective configuration as YAML.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults, the config file, environment
variables and any --config overlay have been applied. The API key is redacted.`,
		Example: `  solarsizer config show
  solarsizer config show --config staging.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := *config.GetGlobalConfig()
			if shown.Extraction.APIKey != "" {
				shown.Extraction.APIKey = redacted
			}

			data, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
