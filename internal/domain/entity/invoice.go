package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distingue facturas de recibos.
type DocumentType string

const (
	TypeInvoice DocumentType = "facture"
	TypeReceipt DocumentType = "recu"
)

// Valid indica si el tipo es uno de los soportados.
func (t DocumentType) Valid() bool {
	return t == TypeInvoice || t == TypeReceipt
}

// PaymentStatus estado de cobro derivado de (montant_total, montant_paye).
// Nunca se asigna directamente: ver ledger.DeriveStatus.
type PaymentStatus string

const (
	StatusUnpaid        PaymentStatus = "impayee"
	StatusPartiallyPaid PaymentStatus = "partielle"
	StatusPaid          PaymentStatus = "payee"
)

// Invoice representa un documento de la colección "factures" (factura o recibo).
type Invoice struct {
	ID          string
	Type        DocumentType
	ClientName  string
	ClientPhone string
	ClientEmail string
	Items       []LineItem // vacío para recibos
	Object      string     // objeto del pago (recibos)
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	Remainder   decimal.Decimal
	Status      PaymentStatus
	Date        time.Time
	UserID      string // creador
	Role        string // rol del creador al momento de crear
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy indica si la sesión es dueña del documento.
func (i *Invoice) OwnedBy(s Session) bool {
	return i.UserID == s.UserID
}
