package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/report"
)

// zoneRow is the JSON shape of a listed zone.
type zoneRow struct {
	Name         string  `json:"name"`
	MonthlyYield float64 `json:"monthly_yield"`
	AnnualYield  float64 `json:"annual_yield"`
}

// NewZonesCmd lists the zones of the configured catalog.
func NewZonesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List supported project zones",
		Example: `  solarsizer zones
  solarsizer zones --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}

			catalog := eng.Catalog()
			rows := make([]zoneRow, 0, len(catalog.Zones))
			for _, z := range catalog.Zones {
				rows = append(rows, zoneRow{Name: z.Name, MonthlyYield: z.MonthlyYield, AnnualYield: z.AnnualYield()})
			}

			w := cmd.OutOrStdout()
			switch format := outputFormat(cmd, output); format {
			case formatJSON:
				return renderJSON(w, rows)
			case formatNDJSON:
				for _, r := range rows {
					if err = renderJSON(w, r); err != nil {
						return err
					}
				}
				return nil
			case formatTable:
				tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)
				fmt.Fprintln(tw, "ZONA\tkWh/kWp MES\tkWh/kWp AÑO")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name,
						report.FormatQuantity(r.MonthlyYield), report.FormatQuantity(r.AnnualYield))
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unsupported output format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&output, flagOutput, formatTable, "output format: table, json or ndjson")

	return cmd
}
