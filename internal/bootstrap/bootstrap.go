// Package bootstrap traduce la configuración a los parámetros de los casos de uso.
// Lo comparten la API y la CLI.
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
	infrapdf "github.com/jhoicas/facturation-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturation-api/pkg/config"
	"github.com/jhoicas/facturation-api/pkg/retry"
)

// RetryPolicy política de reintentos de almacenamiento.
func RetryPolicy(c config.RetryConfig) retry.Policy {
	p := retry.DefaultPolicy()
	if c.MaxRetries >= 0 {
		p.MaxRetries = c.MaxRetries
	}
	if c.InitialInterval > 0 {
		p.InitialInterval = c.InitialInterval
	}
	if c.MaxInterval > 0 {
		p.MaxInterval = c.MaxInterval
	}
	return p
}

// BillingSettings parámetros de facturación y valores por defecto de las líneas.
func BillingSettings(cfg *config.Config) (billing.Settings, ledger.LineDefaults, error) {
	rate, err := parseAmount("BILLING_TAX_RATE", cfg.Billing.TaxRate, ledger.DefaultTaxRate)
	if err != nil {
		return billing.Settings{}, ledger.LineDefaults{}, err
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return billing.Settings{}, ledger.LineDefaults{}, fmt.Errorf("BILLING_TAX_RATE fuera de rango: %s", rate)
	}
	price, err := parseAmount("BILLING_DEFAULT_UNIT_PRICE", cfg.Billing.DefaultUnitPrice, ledger.DefaultUnitPrice)
	if err != nil {
		return billing.Settings{}, ledger.LineDefaults{}, err
	}
	if price.IsNegative() {
		return billing.Settings{}, ledger.LineDefaults{}, fmt.Errorf("BILLING_DEFAULT_UNIT_PRICE negativo: %s", price)
	}

	settings := billing.DefaultSettings()
	settings.TaxRate = rate
	if cfg.Billing.Currency != "" {
		settings.Currency = cfg.Billing.Currency
	}
	settings.CompanyName = cfg.Billing.CompanyName
	settings.Retry = RetryPolicy(cfg.Retry)
	settings.Now = time.Now
	return settings, ledger.LineDefaults{UnitPrice: price, TaxRate: rate}, nil
}

// Letterhead membrete de los PDF.
func Letterhead(c config.BillingConfig) infrapdf.Letterhead {
	return infrapdf.Letterhead{
		CompanyName: c.CompanyName,
		RCCM:        c.CompanyRCCM,
		NIF:         c.CompanyNIF,
		Address:     c.CompanyAddress,
		Phone:       c.CompanyPhone,
		City:        c.City,
		Currency:    c.Currency,
	}
}

func parseAmount(key, raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s inválido %q: %w", key, raw, err)
	}
	return d, nil
}
