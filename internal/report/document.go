// Package report renders sizing results for clients: the quote PDF and the
// label/value sections shared with the CLI.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rshade/solarsizer/internal/engine"
	"github.com/rshade/solarsizer/internal/quote"
)

// ErrMissingField is returned by Document.Validate for a required client field left empty.
var ErrMissingField = errors.New("missing required field")

// Client holds the data supplied on the quote request form.
type Client struct {
	Name         string
	Project      string
	Phone        string
	Email        string
	AdvisorEmail string
	Location     string
	AreaM2       float64
}

// Brand identifies the company issuing the quote.
type Brand struct {
	Name     string
	LegalID  string
	Website  string
	LogoPath string
}

// Document is everything printed on a quote.
type Document struct {
	Ticket         quote.Ticket
	Client         Client
	Brand          Brand
	Result         *engine.SizingResult
	MaintenanceFee decimal.Decimal
	Conditions     []string
}

// Validate reports the first required form field left empty.
func (c Client) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"client", c.Name},
		{"project", c.Project},
		{"phone", c.Phone},
		{"email", c.Email},
		{"advisor_email", c.AdvisorEmail},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

// Validate checks that every required field is present.
func (d Document) Validate() error {
	if err := d.Client.Validate(); err != nil {
		return err
	}
	if d.Result == nil {
		return fmt.Errorf("%w: result", ErrMissingField)
	}
	if d.Ticket.Number <= 0 {
		return fmt.Errorf("%w: quote number", ErrMissingField)
	}
	return nil
}

// Filename returns the download name for a quote number.
func Filename(number int) string {
	return fmt.Sprintf("cotizacion_%d.pdf", number)
}

// DefaultConditions is printed when no conditions are configured.
func DefaultConditions() []string {
	return []string{
		"Los valores de esta cotización tienen una vigencia de 15 días calendario.",
		"Los cálculos se basan en el consumo promedio informado y en la radiación promedio de la zona.",
		"El área disponible y las condiciones de sombra se verifican en la visita técnica.",
		"La certificación RETIE se tramita una vez finalizada la instalación.",
	}
}
