package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
)

var owner = entity.Session{UserID: "user-1", Email: "caisse@mabou.ml", Role: entity.RoleUser}

func invoiceParams() ledger.RecordParams {
	return ledger.RecordParams{
		Type:       entity.TypeInvoice,
		ClientName: "Clinique Pasteur",
		Items: []entity.LineItem{
			{Description: "Tensiomètre", Quantity: 2, UnitPrice: d(15000), TaxRate: d(18)},
			{Description: "Stéthoscope", Quantity: 1, UnitPrice: d(50000)},
		},
		Owner: owner,
		Now:   time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewRecord_Factura(t *testing.T) {
	inv, entry, err := ledger.NewRecord(invoiceParams())
	require.NoError(t, err)
	assert.Nil(t, entry, "sin acompte no hay pago inicial")

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, entity.TypeInvoice, inv.Type)
	assert.True(t, inv.TotalAmount.Equal(d(80000)))
	assert.True(t, inv.AmountPaid.IsZero())
	assert.True(t, inv.Remainder.Equal(d(80000)))
	assert.Equal(t, entity.StatusUnpaid, inv.Status)
	assert.Equal(t, "user-1", inv.UserID)
	assert.Equal(t, entity.RoleUser, inv.Role)
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), inv.Date)
	assert.True(t, ledger.Consistent(inv))
}

func TestNewRecord_FacturaConAcompte(t *testing.T) {
	p := invoiceParams()
	p.InitialPayment = d(30000)

	inv, entry, err := ledger.NewRecord(p)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, inv.ID, entry.InvoiceID)
	assert.True(t, entry.Amount.Equal(d(30000)))
	assert.Equal(t, entity.StatusPartiallyPaid, inv.Status)
	assert.True(t, inv.Remainder.Equal(d(50000)))
}

func TestNewRecord_AcompteMayorQueTotal(t *testing.T) {
	p := invoiceParams()
	p.InitialPayment = d(80001)
	_, _, err := ledger.NewRecord(p)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestNewRecord_Recibo(t *testing.T) {
	inv, entry, err := ledger.NewRecord(ledger.RecordParams{
		Type:       entity.TypeReceipt,
		ClientName: "M. Traoré",
		Amount:     d(25000),
		Object:     "Paiement de services médicaux",
		Owner:      owner,
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Empty(t, inv.Items)
	assert.True(t, inv.TotalAmount.Equal(d(25000)))
	assert.Equal(t, entity.StatusPaid, inv.Status)
	assert.True(t, inv.Remainder.IsZero())
	assert.Equal(t, "Paiement de services médicaux", inv.Object)
}

func TestNewRecord_Validaciones(t *testing.T) {
	t.Run("cliente vacío", func(t *testing.T) {
		p := invoiceParams()
		p.ClientName = "   "
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("factura sin líneas", func(t *testing.T) {
		p := invoiceParams()
		p.Items = nil
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("cantidad negativa", func(t *testing.T) {
		p := invoiceParams()
		p.Items[0].Quantity = -1
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})
	t.Run("precio negativo", func(t *testing.T) {
		p := invoiceParams()
		p.Items[1].UnitPrice = d(-5)
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})
	t.Run("tipo desconocido", func(t *testing.T) {
		p := invoiceParams()
		p.Type = "devis"
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("recibo sin monto", func(t *testing.T) {
		_, _, err := ledger.NewRecord(ledger.RecordParams{
			Type: entity.TypeReceipt, ClientName: "X", Amount: decimal.Zero, Owner: owner,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("precio con tres decimales", func(t *testing.T) {
		p := invoiceParams()
		p.Items[0].UnitPrice = decimal.RequireFromString("15000.125")
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("acompte con tres decimales", func(t *testing.T) {
		p := invoiceParams()
		p.InitialPayment = decimal.RequireFromString("10.001")
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("recibo con tres decimales", func(t *testing.T) {
		_, _, err := ledger.NewRecord(ledger.RecordParams{
			Type: entity.TypeReceipt, ClientName: "X", Amount: decimal.RequireFromString("2500.555"), Owner: owner,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("sesión vacía", func(t *testing.T) {
		p := invoiceParams()
		p.Owner = entity.Session{}
		_, _, err := ledger.NewRecord(p)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
