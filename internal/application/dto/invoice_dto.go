package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de documento en la API.
const DateLayout = "2006-01-02"

// LineItemDTO línea de factura tal como viaja en JSON.
type LineItemDTO struct {
	Description string          `json:"description" jsonschema:"required,minLength=1,maxLength=500"`
	Date        string          `json:"date,omitempty" jsonschema:"format=date"`
	Quantity    int             `json:"qty" jsonschema:"required"`
	UnitPrice   decimal.Decimal `json:"price" jsonschema:"required"`
	TaxRate     decimal.Decimal `json:"tva"`
}

// CreateInvoiceRequest entrada de POST /api/invoices.
// type=facture usa items (+ acompte opcional); type=recu usa montant y objet.
type CreateInvoiceRequest struct {
	Type           string          `json:"type" jsonschema:"required,enum=facture,enum=recu"`
	ClientName     string          `json:"client_name" jsonschema:"required,maxLength=200"`
	ClientPhone    string          `json:"client_phone,omitempty" jsonschema:"maxLength=50"`
	ClientEmail    string          `json:"client_email,omitempty" jsonschema:"maxLength=200"`
	Items          []LineItemDTO   `json:"items,omitempty"`
	Amount         decimal.Decimal `json:"montant"`
	Object         string          `json:"objet,omitempty" jsonschema:"maxLength=500"`
	InitialPayment decimal.Decimal `json:"acompte"`
}

// InvoiceResponse salida de una factura o recibo.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ClientName  string          `json:"client_name"`
	ClientPhone string          `json:"client_phone"`
	ClientEmail string          `json:"client_email"`
	Items       []LineItemDTO   `json:"items"`
	Object      string          `json:"objet,omitempty"`
	TotalAmount decimal.Decimal `json:"montant_total"`
	AmountPaid  decimal.Decimal `json:"montant_paye"`
	Remainder   decimal.Decimal `json:"reliquat"`
	Status      string          `json:"status"`
	Tax         decimal.Decimal `json:"tva"`         // informativo: Σ línea × tva / 100
	TotalTTC    decimal.Decimal `json:"montant_ttc"` // informativo: montant_total + tva
	Date        string          `json:"date"`
	UserID      string          `json:"user_id"`
	Role        string          `json:"role"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InvoiceListQuery filtros de GET /api/invoices.
type InvoiceListQuery struct {
	Type        string `query:"type"`
	Status      string `query:"status"`
	Outstanding bool   `query:"outstanding"`
	PageRequest
}

// InvoiceListResponse listado paginado.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PaymentRequest entrada de POST /api/invoices/:id/payments.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"montant" jsonschema:"required"`
}

// PaymentResponse un pago del historial.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"facture_id"`
	Amount    decimal.Decimal `json:"montant"`
	AppliedBy string          `json:"applied_by"`
	Mode      string          `json:"mode"`
	CreatedAt time.Time       `json:"created_at"`
}

// ApplyPaymentResponse saldo resultante y pago registrado (nil si el monto fue 0).
type ApplyPaymentResponse struct {
	Invoice InvoiceResponse  `json:"invoice"`
	Payment *PaymentResponse `json:"payment,omitempty"`
}

// SendInvoiceRequest destinatario opcional; por defecto client_email.
type SendInvoiceRequest struct {
	To string `json:"to,omitempty" jsonschema:"maxLength=200"`
}

// SendInvoiceResponse confirmación de envío.
type SendInvoiceResponse struct {
	To       string `json:"to"`
	FileName string `json:"file_name"`
}

// DeleteAllResponse resultado del borrado masivo.
type DeleteAllResponse struct {
	Deleted int64 `json:"deleted"`
}
