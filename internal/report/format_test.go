package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.Decimal
		want string
	}{
		{name: "savings", in: decimal.NewFromInt(4800000), want: "$4.800.000"},
		{name: "project cost", in: decimal.NewFromInt(375320), want: "$375.320"},
		{name: "maintenance fee", in: decimal.NewFromInt(315900), want: "$315.900"},
		{name: "small", in: decimal.NewFromInt(999), want: "$999"},
		{name: "zero", in: decimal.Zero, want: "$0"},
		{name: "fraction truncated", in: decimal.RequireFromString("1234.99"), want: "$1.234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.in))
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "10.512", FormatQuantity(10512))
	assert.Equal(t, "15.373,80", FormatQuantity(15373.8))
	assert.Equal(t, "4,20", FormatQuantity(4.2))
	assert.Equal(t, "0", FormatQuantity(0))
}
