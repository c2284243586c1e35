package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/migration"
	"github.com/rshade/solarsizer/internal/quote"
)

// NewConfigMigrateCmd imports the quote counter of an earlier installation.
func NewConfigMigrateCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "migrate [DIR]",
		Short: "Import the quote counter from a previous installation",
		Long: `Looks for cotizacion.json in DIR (default: the current directory) and raises
the quote counter so numbering continues after the last quote issued there.
The counter is never lowered and the legacy file is left untouched.`,
		Example: `  solarsizer config migrate
  solarsizer config migrate /srv/cotizador --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runConfigMigrate(cmd, dir, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "import without asking for confirmation")

	return cmd
}

func runConfigMigrate(cmd *cobra.Command, dir string, yes bool) error {
	legacyPath, ok := migration.DetectLegacy(dir)
	if !ok {
		return fmt.Errorf("no %s found in %s", migration.LegacyCounterFile, dir)
	}
	if !yes && !isTerminal(os.Stdin) {
		return errors.New("confirmation required, use --yes when not running in a terminal")
	}

	path, err := config.GetGlobalConfig().QuoteStorePath()
	if err != nil {
		return err
	}
	store, err := quote.NewStore(path)
	if err != nil {
		return err
	}

	return migration.RunMigration(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), legacyPath, store,
		migration.Options{AssumeYes: yes})
}
