package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// MoneyScale decimales admitidos en montos; las columnas NUMERIC(18, 2) no guardan más.
const MoneyScale = 2

// checkScale rechaza montos con más de MoneyScale decimales.
func checkScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(MoneyScale)) {
		return fmt.Errorf("%w: %s %s admite como máximo %d decimales", domain.ErrValidation, field, v, MoneyScale)
	}
	return nil
}

// Balance estado de cobro de un documento.
type Balance struct {
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remainder decimal.Decimal
	Status    entity.PaymentStatus
}

// NewBalance construye un saldo validando 0 <= paid <= total.
func NewBalance(total, paid decimal.Decimal) (Balance, error) {
	if total.IsNegative() {
		return Balance{}, fmt.Errorf("%w: montant_total negativo", domain.ErrOutOfRange)
	}
	if paid.IsNegative() || paid.GreaterThan(total) {
		return Balance{}, fmt.Errorf("%w: montant_paye %s fuera de [0, %s]", domain.ErrOutOfRange, paid, total)
	}
	return Balance{
		Total:     total,
		Paid:      paid,
		Remainder: Remainder(total, paid),
		Status:    DeriveStatus(total, paid),
	}, nil
}

// BalanceOf extrae el saldo actual de una factura.
func BalanceOf(inv *entity.Invoice) Balance {
	return Balance{
		Total:     inv.TotalAmount,
		Paid:      inv.AmountPaid,
		Remainder: Remainder(inv.TotalAmount, inv.AmountPaid),
		Status:    DeriveStatus(inv.TotalAmount, inv.AmountPaid),
	}
}

// ApplyPayment suma amount al pagado. amount debe estar en [0, reliquat];
// si no, retorna ErrOutOfRange y b queda intacto. Más de MoneyScale decimales es ErrValidation.
func ApplyPayment(b Balance, amount decimal.Decimal) (Balance, error) {
	if amount.IsNegative() {
		return b, fmt.Errorf("%w: el pago no puede ser negativo", domain.ErrOutOfRange)
	}
	if err := checkScale("pago", amount); err != nil {
		return b, err
	}
	remainder := Remainder(b.Total, b.Paid)
	if amount.GreaterThan(remainder) {
		return b, fmt.Errorf("%w: el pago %s excede el reliquat %s", domain.ErrOutOfRange, amount, remainder)
	}
	return NewBalance(b.Total, b.Paid.Add(amount))
}

// ApplyToInvoice aplica el pago sobre la factura y devuelve la entrada de pago a persistir.
// Un pago de 0 no modifica nada y no genera entrada (entry == nil).
// En caso de error la factura no se modifica.
func ApplyToInvoice(inv *entity.Invoice, amount decimal.Decimal, appliedBy string, now time.Time) (*entity.PaymentEntry, error) {
	next, err := ApplyPayment(BalanceOf(inv), amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, nil
	}
	inv.AmountPaid = next.Paid
	inv.Remainder = next.Remainder
	inv.Status = next.Status
	inv.UpdatedAt = now
	return &entity.PaymentEntry{
		ID:        uuid.New().String(),
		InvoiceID: inv.ID,
		Amount:    amount,
		AppliedBy: appliedBy,
		Mode:      entity.PaymentModeManual,
		CreatedAt: now,
	}, nil
}
