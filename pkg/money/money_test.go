package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturation-api/pkg/money"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"100000", "100 000"},
		{"1234567", "1 234 567"},
		{"1234.5", "1 234,50"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, money.Format(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestFormatCurrency_MonedaPorDefecto(t *testing.T) {
	assert.Equal(t, "60 000 FCFA", money.FormatCurrency(decimal.NewFromInt(60000), ""))
	assert.Equal(t, "5 EUR", money.FormatCurrency(decimal.NewFromInt(5), "EUR"))
}
