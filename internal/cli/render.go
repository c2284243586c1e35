package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/report"
)

// Output formats.
const (
	formatTable  = "table"
	formatJSON   = "json"
	formatNDJSON = "ndjson"
)

const (
	tabPadding  = 2
	tabMinWidth = 0
	tabWidth    = 0
)

// outputFormat returns the --output flag, or the configured default when it was not given.
func outputFormat(cmd *cobra.Command, flagValue string) string {
	if cmd.Flags().Changed(flagOutput) {
		return flagValue
	}
	return config.GetDefaultOutputFormat()
}

// renderResult writes a sizing result in the requested format.
// JSON output is the full result; table and ndjson output use the display sections.
func renderResult(w io.Writer, format string, result *engine.SizingResult) error {
	switch format {
	case formatTable:
		return renderTable(w, result)
	case formatJSON:
		return renderJSON(w, result)
	case formatNDJSON:
		return renderNDJSON(w, report.Sections(result))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderTable(w io.Writer, result *engine.SizingResult) error {
	fmt.Fprintf(w, "Zona: %s (%.0f kWh/kWp por año)\n\n", result.Input.Zone, result.AnnualYieldKWhPerKWp)

	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)
	for i, s := range report.Sections(result) {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t\n", s.Title)
		for _, r := range s.Rows {
			fmt.Fprintf(tw, "  %s\t%s\n", r.Label, r.Value)
		}
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// renderNDJSON writes one section per line.
func renderNDJSON(w io.Writer, sections []report.Section) error {
	encoder := json.NewEncoder(w)
	for _, s := range sections {
		if err := encoder.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
