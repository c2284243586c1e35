package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/report"
)

// NewQuoteCmd creates the quote command, which issues a numbered PDF quote.
func NewQuoteCmd() *cobra.Command {
	var (
		project projectFlags
		client  report.Client
		brand   string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Issue a numbered PDF quote for a project",
		Long: `Runs the estimate, takes the next quote number and writes the quote PDF.

A quote number is only consumed once the estimate has succeeded. The PDF is
written to cotizacion_<number>.pdf in the current directory unless --out is given.`,
		Example: `  solarsizer quote --zone "Región Andina" --demand 350 --cost 720 \
    --client "Ana Pérez" --project "Casa Campestre" --phone 3001234567 \
    --email ana@example.com --advisor-email asesor@example.com \
    --location "Rionegro, Antioquia" --area 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlags(cmd, flagZone, flagDemand, flagCost); err != nil {
				return err
			}
			return runQuote(cmd, report.Request{Input: project.input(), Client: client}, brand, out)
		},
	}

	project.register(cmd)
	cmd.Flags().StringVar(&client.Name, "client", "", "client name")
	cmd.Flags().StringVar(&client.Project, "project", "", "project name")
	cmd.Flags().StringVar(&client.Phone, "phone", "", "client phone")
	cmd.Flags().StringVar(&client.Email, "email", "", "client email")
	cmd.Flags().StringVar(&client.AdvisorEmail, "advisor-email", "", "advisor email")
	cmd.Flags().StringVar(&client.Location, "location", "", "project location")
	cmd.Flags().Float64Var(&client.AreaM2, "area", 0, "available area in m²")
	cmd.Flags().StringVar(&brand, "brand", "", "brand profile from the configuration (default: quotes.default_brand)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "PDF output path")

	return cmd
}

func runQuote(cmd *cobra.Command, req report.Request, brandName, out string) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	brand, err := resolveBrand(cfg, brandName)
	if err != nil {
		return err
	}
	req.Brand = brand

	eng, err := newEngine()
	if err != nil {
		return err
	}
	issuer, err := newIssuer(cfg, eng)
	if err != nil {
		return err
	}

	doc, err := issuer.Issue(ctx, req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = report.RenderPDF(&buf, doc); err != nil {
		return fmt.Errorf("rendering quote %d: %w", doc.Ticket.Number, err)
	}

	if out == "" {
		out = report.Filename(doc.Ticket.Number)
	}
	//nolint:gosec // Quotes are shared with clients.
	if err = os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing quote: %w", err)
	}

	logger.Info().Ctx(ctx).Int("quote_number", doc.Ticket.Number).Str("path", out).Msg("quote written")
	cmd.Printf("Cotización #%d (%s) guardada en %s\n", doc.Ticket.Number, doc.Ticket.Date(), out)
	return nil
}
