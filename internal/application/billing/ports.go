package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/retry"
)

// LedgerTxRunner ejecuta una función dentro de una transacción con los repos de facturas y pagos.
// Si fn devuelve error se hace rollback de todo.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación PDF de una factura o recibo.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, payments []*entity.PaymentEntry) ([]byte, error)
}

// MailMessage correo con un adjunto.
type MailMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// DocumentMailer envía documentos por correo.
type DocumentMailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// InvoiceExporter vuelca facturas a una hoja de cálculo.
type InvoiceExporter interface {
	ExportInvoicesXLSX(ctx context.Context, invoices []*entity.Invoice) ([]byte, error)
}

// Settings parámetros de facturación compartidos por los casos de uso.
type Settings struct {
	TaxRate     decimal.Decimal // TVA estándar
	Currency    string
	CompanyName string
	Retry       retry.Policy
	Now         func() time.Time
}

// DefaultSettings TVA 18%, FCFA y la política de reintentos por defecto.
func DefaultSettings() Settings {
	return Settings{
		TaxRate:  ledger.DefaultTaxRate,
		Currency: "FCFA",
		Retry:    retry.DefaultPolicy(),
		Now:      time.Now,
	}
}

func (s Settings) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
