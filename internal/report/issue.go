package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/logging"
	"github.com/rshade/solarsizer/internal/quote"
)

// Estimator sizes a project.
type Estimator interface {
	Estimate(ctx context.Context, in engine.ProjectInput) (*engine.SizingResult, error)
}

// TicketSource hands out quote numbers.
type TicketSource interface {
	Next(ctx context.Context) (quote.Ticket, error)
}

// Issuer assembles quote documents.
type Issuer struct {
	Estimator      Estimator
	Tickets        TicketSource
	MaintenanceFee decimal.Decimal
	Conditions     []string
}

// Request is a single quote request.
type Request struct {
	Input  engine.ProjectInput
	Client Client
	Brand  Brand
}

// Issue validates the request, runs the estimate and only then takes the next
// quote number, so a failed estimate never consumes a number.
func (i *Issuer) Issue(ctx context.Context, req Request) (Document, error) {
	if err := req.Client.Validate(); err != nil {
		return Document{}, err
	}

	result, err := i.Estimator.Estimate(ctx, req.Input)
	if err != nil {
		return Document{}, err
	}

	ticket, err := i.Tickets.Next(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("issuing quote number: %w", err)
	}

	conditions := i.Conditions
	if len(conditions) == 0 {
		conditions = DefaultConditions()
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "report").
		Int("quote_number", ticket.Number).
		Str("zone", result.Input.Zone).
		Msg("quote issued")

	return Document{
		Ticket:         ticket,
		Client:         req.Client,
		Brand:          req.Brand,
		Result:         result,
		MaintenanceFee: i.MaintenanceFee,
		Conditions:     conditions,
	}, nil
}
