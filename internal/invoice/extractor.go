package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/solarsizer/internal/logging"
)

// Extractor turns invoice documents into estimate inputs.
type Extractor struct {
	client Client
	zones  []string
}

// NewExtractor returns an extractor asking client to choose among zones.
func NewExtractor(client Client, zones []string) *Extractor {
	return &Extractor{client: client, zones: append([]string(nil), zones...)}
}

// Result is the outcome of Extract.
type Result struct {
	Fields Fields `json:"fields"`
	Reply  string `json:"reply"`
	Text   string `json:"-"`
}

// Extract reads every document concurrently, joins their text in order and
// asks the model for the fields.
func (e *Extractor) Extract(ctx context.Context, docs ...Document) (*Result, error) {
	if len(docs) == 0 {
		return nil, errors.New("at least one document is required")
	}
	log := logging.FromContext(ctx)
	start := time.Now()

	texts := make([]string, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		g.Go(func() error {
			text, err := ExtractText(gctx, doc)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	text := strings.Join(texts, "\n")
	log.Debug().
		Ctx(ctx).
		Str("component", "invoice").
		Int("documents", len(docs)).
		Int("text_length", len(text)).
		Msg("invoice text extracted")

	reply, err := e.client.Complete(ctx, SystemPrompt, BuildPrompt(text, e.zones))
	if err != nil {
		return nil, fmt.Errorf("asking model for invoice fields: %w", err)
	}

	fields, err := ParseFields(reply)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "invoice").
			Err(err).
			Str("reply", reply).
			Msg("could not parse model reply")
		return nil, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "invoice").
		Str("zone", fields.Zone).
		Float64("monthly_demand_kwh", fields.MonthlyDemandKWh).
		Float64("unit_energy_cost", fields.UnitEnergyCost).
		Dur("duration", time.Since(start)).
		Msg("invoice fields extracted")

	return &Result{Fields: fields, Reply: reply, Text: text}, nil
}
