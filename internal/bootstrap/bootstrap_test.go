package bootstrap_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/bootstrap"
	"github.com/jhoicas/facturation-api/pkg/config"
)

func TestBillingSettings_DesdeConfig(t *testing.T) {
	cfg := &config.Config{
		Billing: config.BillingConfig{TaxRate: "18", DefaultUnitPrice: "2500", Currency: "XOF", CompanyName: "MABOU"},
		Retry:   config.RetryConfig{MaxRetries: 5, InitialInterval: 50 * time.Millisecond, MaxInterval: time.Second},
	}
	s, defaults, err := bootstrap.BillingSettings(cfg)
	require.NoError(t, err)
	assert.True(t, s.TaxRate.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, "XOF", s.Currency)
	assert.Equal(t, "MABOU", s.CompanyName)
	assert.Equal(t, 5, s.Retry.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, s.Retry.InitialInterval)
	assert.True(t, defaults.UnitPrice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, defaults.TaxRate.Equal(decimal.NewFromInt(18)))
}

func TestBillingSettings_ValoresPorDefecto(t *testing.T) {
	s, defaults, err := bootstrap.BillingSettings(&config.Config{})
	require.NoError(t, err)
	assert.True(t, s.TaxRate.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, "FCFA", s.Currency)
	assert.True(t, defaults.UnitPrice.Equal(decimal.NewFromInt(1000)))
}

func TestBillingSettings_Invalidos(t *testing.T) {
	_, _, err := bootstrap.BillingSettings(&config.Config{Billing: config.BillingConfig{TaxRate: "dix-huit"}})
	assert.Error(t, err)
	_, _, err = bootstrap.BillingSettings(&config.Config{Billing: config.BillingConfig{TaxRate: "120"}})
	assert.Error(t, err)
	_, _, err = bootstrap.BillingSettings(&config.Config{Billing: config.BillingConfig{DefaultUnitPrice: "-1"}})
	assert.Error(t, err)
}

func TestLetterhead(t *testing.T) {
	lh := bootstrap.Letterhead(config.BillingConfig{CompanyName: "MABOU", CompanyNIF: "084148985H", City: "Bamako"})
	assert.Equal(t, "MABOU", lh.CompanyName)
	assert.Equal(t, "084148985H", lh.NIF)
	assert.Equal(t, "Bamako", lh.City)
}
