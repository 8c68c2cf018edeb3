// Package ledger contiene las reglas del saldo de facturas: cálculo de totales,
// aplicación de pagos y derivación del estado de cobro. Funciones puras, sin I/O.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// Remainder devuelve max(total - paid, 0).
func Remainder(total, paid decimal.Decimal) decimal.Decimal {
	r := total.Sub(paid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// DeriveStatus mapea (total, pagado) al estado de cobro.
//
//	payee     si reliquat = 0
//	partielle si 0 < pagado < total
//	impayee   en otro caso
func DeriveStatus(total, paid decimal.Decimal) entity.PaymentStatus {
	if Remainder(total, paid).IsZero() {
		return entity.StatusPaid
	}
	if paid.IsPositive() && paid.LessThan(total) {
		return entity.StatusPartiallyPaid
	}
	return entity.StatusUnpaid
}

// Consistent indica si los campos persistidos de la factura respetan los invariantes.
func Consistent(inv *entity.Invoice) bool {
	if inv.TotalAmount.IsNegative() || inv.AmountPaid.IsNegative() {
		return false
	}
	if inv.AmountPaid.GreaterThan(inv.TotalAmount) {
		return false
	}
	return inv.Remainder.Equal(Remainder(inv.TotalAmount, inv.AmountPaid)) &&
		inv.Status == DeriveStatus(inv.TotalAmount, inv.AmountPaid)
}
