package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/invoice"
	"github.com/rshade/solarsizer/internal/quote"
	"github.com/rshade/solarsizer/internal/report"
)

// Flag names shared between commands.
const (
	flagZone   = "zone"
	flagDemand = "demand"
	flagCost   = "cost"
	flagOutput = "output"
)

// projectFlags holds the three estimate inputs.
type projectFlags struct {
	zone   string
	demand float64
	cost   float64
}

func (p *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.zone, flagZone, "", "project zone (see 'solarsizer zones')")
	cmd.Flags().Float64Var(&p.demand, flagDemand, 0, "average monthly consumption in kWh")
	cmd.Flags().Float64Var(&p.cost, flagCost, 0, "price of one kWh")
}

func (p *projectFlags) input() engine.ProjectInput {
	return engine.ProjectInput{
		Zone:             p.zone,
		MonthlyDemandKWh: p.demand,
		UnitEnergyCost:   p.cost,
	}
}

// requireFlags fails with a single error naming every missing flag.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flag(s) not set: %v", missing)
	}
	return nil
}

// newEngine builds an engine over the configured catalog.
func newEngine() (*engine.Engine, error) {
	eng, err := engine.New(config.GetGlobalConfig().Catalog)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return eng, nil
}

// newIssuer wires the quote counter and the configured terms around est.
func newIssuer(cfg *config.Config, est report.Estimator) (*report.Issuer, error) {
	path, err := cfg.QuoteStorePath()
	if err != nil {
		return nil, err
	}
	store, err := quote.NewStore(path)
	if err != nil {
		return nil, err
	}
	return &report.Issuer{
		Estimator:      est,
		Tickets:        store,
		MaintenanceFee: cfg.Quotes.MaintenanceFee,
		Conditions:     cfg.Quotes.Conditions,
	}, nil
}

// resolveBrand maps a configured brand onto the quote letterhead.
func resolveBrand(cfg *config.Config, name string) (report.Brand, error) {
	b, err := cfg.Brand(name)
	if err != nil {
		return report.Brand{}, err
	}
	return report.Brand{
		Name:     b.Name,
		LegalID:  b.LegalID,
		Website:  b.Website,
		LogoPath: b.LogoPath,
	}, nil
}

// newExtractor returns nil with invoice.ErrMissingAPIKey when no key is configured.
func newExtractor(cfg *config.Config, zones []string) (*invoice.Extractor, error) {
	client, err := invoice.NewOpenAIClient(invoice.OpenAIConfig{
		APIKey:  cfg.Extraction.APIKey,
		Model:   cfg.Extraction.Model,
		BaseURL: cfg.Extraction.BaseURL,
		Timeout: time.Duration(cfg.Extraction.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		if errors.Is(err, invoice.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w: set %s or extraction.api_key", err, config.EnvOpenAIKey)
		}
		return nil, err
	}
	return invoice.NewExtractor(client, zones), nil
}

// readDocuments loads invoice files from disk.
func readDocuments(paths []string) ([]invoice.Document, error) {
	docs := make([]invoice.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading invoice: %w", err)
		}
		docs = append(docs, invoice.Document{Name: p, Data: data})
	}
	return docs, nil
}
