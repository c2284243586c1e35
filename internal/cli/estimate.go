package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/logging"
	"github.com/rshade/solarsizer/internal/tui"
)

// NewEstimateCmd creates the estimate command, which sizes a project from its
// zone, monthly consumption and energy price.
func NewEstimateCmd() *cobra.Command {
	var (
		project     projectFlags
		output      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Size panels, inverters, batteries and mounting for a project",
		Long: `Estimates the equipment, cost, savings and environmental impact of a solar
installation from the project zone, the average monthly consumption in kWh and
the price of one kWh.

With --interactive the inputs can be adjusted in a terminal UI and the result
is recalculated on demand.`,
		Example: `  # Table output
  solarsizer estimate --zone "Desierto de la Guajira" --demand 500 --cost 800

  # Full result as JSON
  solarsizer estimate --zone "Región Andina" --demand 350 --cost 720 --output json

  # Explore inputs interactively
  solarsizer estimate --interactive --zone "Costa Caribe"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			format := outputFormat(cmd, output)

			if interactive {
				return runEstimateInteractive(cmd, eng, project.input(), format)
			}
			if err = requireFlags(cmd, flagZone, flagDemand, flagCost); err != nil {
				return err
			}
			return runEstimate(cmd, eng, project.input(), format)
		},
	}

	project.register(cmd)
	cmd.Flags().StringVar(&output, flagOutput, formatTable, "output format: table, json or ndjson")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "adjust inputs in an interactive terminal UI")

	return cmd
}

func runEstimate(cmd *cobra.Command, eng *engine.Engine, in engine.ProjectInput, format string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	result, err := eng.Estimate(ctx, in)
	if err != nil {
		log.Debug().Ctx(ctx).Err(err).Msg("estimate failed")
		return err
	}
	return renderResult(cmd.OutOrStdout(), format, result)
}

func runEstimateInteractive(cmd *cobra.Command, eng *engine.Engine, in engine.ProjectInput, format string) error {
	if !isTerminal(os.Stdout) {
		return errors.New("--interactive requires a terminal")
	}

	model := tui.NewEstimateModel(cmd.Context(), eng.ZoneNames(), in, eng.Estimate)
	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("running interactive TUI: %w", err)
	}

	estModel, ok := finalModel.(*tui.EstimateModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T, expected *tui.EstimateModel", finalModel)
	}

	if result := estModel.Result(); result != nil {
		cmd.Println("\nFinal Estimate:")
		return renderResult(cmd.OutOrStdout(), format, result)
	}
	return nil
}
