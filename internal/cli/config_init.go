package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// It writes the built-in defaults, including the full equipment catalog, to
// ~/.solarsizer/config.yaml and drops a .gitignore next to it so the quote
// counter and logs stay out of version control.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Initialize configuration file with default values",
		Annotations: map[string]string{annotationToleratesBrokenConfig: "true"},
		Long: `Creates a new configuration file with default values.

The file contains every catalog table (zones, panels, inverters, batteries,
mounting and pricing) so the numbers can be reviewed and tuned in one place.
An existing file is only replaced with --force or after confirmation on a terminal.`,
		Example: `  # Create configuration
  solarsizer config init

  # Create configuration, overwriting existing
  solarsizer config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if !force {
		_, statErr := os.Stat(configPath)
		switch {
		case statErr == nil:
			if !isTerminal(os.Stdin) {
				return errors.New("configuration file already exists, use --force to overwrite")
			}
			if answer := ConfirmOverwrite(cmd.OutOrStdout(), cmd.InOrStdin(), configPath); !answer.Accepted {
				cmd.Println("Configuration left unchanged")
				return nil
			}
		case !os.IsNotExist(statErr):
			return fmt.Errorf("cannot access config path %s: %w", configPath, statErr)
		}
	}

	cfg := config.Default()
	cfg.SetPath(configPath)
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(filepath.Dir(configPath))
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep the quote counter out of version control\n")
	}

	return nil
}
