package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/report"
)

const maxInvoicePages = 2

// invoiceOutput is the JSON shape printed by the invoice command.
type invoiceOutput struct {
	Fields invoice.Fields       `json:"fields"`
	Reply  string               `json:"reply"`
	Result *engine.SizingResult `json:"result"`
}

// NewInvoiceCmd creates the invoice command, which reads the estimate inputs
// from the front and back of an electricity invoice.
func NewInvoiceCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "invoice FRONT [BACK]",
		Short: "Estimate a project from an electricity invoice",
		Long: `Extracts the text of an electricity invoice (PDF with a text layer, or plain
text), asks the configured language model for the project zone, the average
monthly consumption and the price per kWh, and runs the estimate.

Requires an API key in OPENAI_API_KEY or extraction.api_key.`,
		Example: `  solarsizer invoice factura_frente.pdf factura_reverso.pdf
  solarsizer invoice factura.txt --output json`,
		Args: cobra.RangeArgs(1, maxInvoicePages),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoice(cmd, args, outputFormat(cmd, output))
		},
	}

	cmd.Flags().StringVar(&output, flagOutput, formatTable, "output format: table, json or ndjson")

	return cmd
}

func runInvoice(cmd *cobra.Command, paths []string, format string) error {
	ctx := cmd.Context()

	eng, err := newEngine()
	if err != nil {
		return err
	}
	extractor, err := newExtractor(config.GetGlobalConfig(), eng.ZoneNames())
	if err != nil {
		return err
	}
	docs, err := readDocuments(paths)
	if err != nil {
		return err
	}

	extracted, err := extractor.Extract(ctx, docs...)
	if err != nil {
		return err
	}
	result, err := eng.Estimate(ctx, extracted.Fields.Input())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if format == formatJSON {
		return renderJSON(w, invoiceOutput{Fields: extracted.Fields, Reply: extracted.Reply, Result: result})
	}
	if format == formatTable {
		fmt.Fprintf(w, "Zona del Proyecto: %s\n", extracted.Fields.Zone)
		fmt.Fprintf(w, "Consumo promedio mensual: %s kWh\n", report.FormatQuantity(extracted.Fields.MonthlyDemandKWh))
		fmt.Fprintf(w, "Costo del kWh: %s\n\n", report.FormatQuantity(extracted.Fields.UnitEnergyCost))
	}
	return renderResult(w, format, result)
}
