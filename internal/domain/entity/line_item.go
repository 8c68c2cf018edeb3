package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea de factura. Se persiste como sub-documento JSON.
type LineItem struct {
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Quantity    int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"price"`
	TaxRate     decimal.Decimal `json:"tva"` // porcentaje: 0 o la tasa estándar
}

// Amount devuelve quantity × unit_price (sin impuestos).
func (l LineItem) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Tax devuelve el impuesto de la línea.
func (l LineItem) Tax() decimal.Decimal {
	return l.Amount().Mul(l.TaxRate).Div(decimal.NewFromInt(100))
}
