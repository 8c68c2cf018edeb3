package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// RecordParams datos de entrada para crear una factura o un recibo.
type RecordParams struct {
	Type        entity.DocumentType
	ClientName  string
	ClientPhone string
	ClientEmail string
	Items       []entity.LineItem // facturas
	Amount      decimal.Decimal   // recibos
	Object      string            // recibos
	// InitialPayment acompte de una factura. Los recibos nacen pagados.
	InitialPayment decimal.Decimal
	TaxRate        decimal.Decimal // tasa estándar; cero usa DefaultTaxRate
	Owner          entity.Session
	Now            time.Time
}

// NewRecord construye un documento nuevo con saldo derivado y, si corresponde,
// la entrada del primer pago. Único constructor de entity.Invoice.
func NewRecord(p RecordParams) (*entity.Invoice, *entity.PaymentEntry, error) {
	if !p.Type.Valid() {
		return nil, nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, p.Type)
	}
	name := strings.TrimSpace(p.ClientName)
	if name == "" {
		return nil, nil, fmt.Errorf("%w: client_name es requerido", domain.ErrValidation)
	}
	if !p.Owner.Valid() {
		return nil, nil, fmt.Errorf("%w: sesión sin usuario", domain.ErrValidation)
	}
	rate := p.TaxRate
	if rate.IsZero() {
		rate = DefaultTaxRate
	}
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	var (
		total  decimal.Decimal
		paid   decimal.Decimal
		items  []entity.LineItem
		object string
	)
	switch p.Type {
	case entity.TypeInvoice:
		if len(p.Items) == 0 {
			return nil, nil, fmt.Errorf("%w: la factura necesita al menos una línea", domain.ErrValidation)
		}
		for i, it := range p.Items {
			if err := ValidateLineItem(it, rate); err != nil {
				return nil, nil, fmt.Errorf("línea %d: %w", i, err)
			}
		}
		items = make([]entity.LineItem, len(p.Items))
		copy(items, p.Items)
		total = ComputeTotal(items)
		if err := checkScale("acompte", p.InitialPayment); err != nil {
			return nil, nil, err
		}
		paid = p.InitialPayment
		object = strings.TrimSpace(p.Object)
	case entity.TypeReceipt:
		if p.Amount.IsNegative() {
			return nil, nil, fmt.Errorf("%w: monto negativo", domain.ErrOutOfRange)
		}
		if p.Amount.IsZero() {
			return nil, nil, fmt.Errorf("%w: el recibo necesita un monto", domain.ErrValidation)
		}
		if err := checkScale("monto", p.Amount); err != nil {
			return nil, nil, err
		}
		items = []entity.LineItem{}
		total = p.Amount
		paid = p.Amount
		object = strings.TrimSpace(p.Object)
	}

	bal, err := NewBalance(total, paid)
	if err != nil {
		return nil, nil, err
	}
	inv := &entity.Invoice{
		ID:          uuid.New().String(),
		Type:        p.Type,
		ClientName:  name,
		ClientPhone: strings.TrimSpace(p.ClientPhone),
		ClientEmail: strings.TrimSpace(p.ClientEmail),
		Items:       items,
		Object:      object,
		TotalAmount: bal.Total,
		AmountPaid:  bal.Paid,
		Remainder:   bal.Remainder,
		Status:      bal.Status,
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		UserID:      p.Owner.UserID,
		Role:        p.Owner.Role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var entry *entity.PaymentEntry
	if bal.Paid.IsPositive() {
		entry = &entity.PaymentEntry{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			Amount:    bal.Paid,
			AppliedBy: p.Owner.UserID,
			Mode:      entity.PaymentModeManual,
			CreatedAt: now,
		}
	}
	return inv, entry, nil
}
