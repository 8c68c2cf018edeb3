package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentModeManual único modo soportado: registro manual por un usuario.
const PaymentModeManual = "manual"

// PaymentEntry representa un pago aplicado a una factura (append-only).
type PaymentEntry struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	AppliedBy string
	Mode      string
	CreatedAt time.Time
}
