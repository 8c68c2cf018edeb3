package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft borrador de factura o recibo guardado localmente hasta su envío.
type Draft struct {
	ID          string
	UserID      string
	Type        DocumentType
	ClientName  string
	ClientPhone string
	ClientEmail string
	Object      string
	Amount      decimal.Decimal // monto del recibo; ignorado en facturas
	Items       []LineItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
