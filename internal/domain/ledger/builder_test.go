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

func TestComputeTotal_Referencia(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: 2, UnitPrice: d(15000)},
		{Quantity: 1, UnitPrice: d(50000)},
	}
	assert.True(t, ledger.ComputeTotal(items).Equal(d(80000)))
}

func TestComputeTotal_Vacio(t *testing.T) {
	assert.True(t, ledger.ComputeTotal(nil).IsZero())
}

func TestComputeTax_PorLinea(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: 2, UnitPrice: d(10000), TaxRate: d(18)},
		{Quantity: 1, UnitPrice: d(50000), TaxRate: decimal.Zero},
	}
	assert.True(t, ledger.ComputeTax(items).Equal(d(3600)))
}

func TestBuilder_AddLineItemUsaDefaults(t *testing.T) {
	b := ledger.NewBuilder(ledger.DefaultLineDefaults())
	item := b.AddLineItem()

	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(d(1000)))
	assert.True(t, item.TaxRate.Equal(d(18)))
	assert.False(t, item.Date.IsZero())
	assert.Len(t, b.Items(), 1)
	assert.True(t, b.Total().Equal(d(1000)))
}

func TestBuilder_RemoveLineItem(t *testing.T) {
	b := ledger.NewBuilder(ledger.DefaultLineDefaults(),
		entity.LineItem{Description: "a", Quantity: 1, UnitPrice: d(1)},
		entity.LineItem{Description: "b", Quantity: 1, UnitPrice: d(2)},
		entity.LineItem{Description: "c", Quantity: 1, UnitPrice: d(3)},
	)
	require.NoError(t, b.RemoveLineItem(1))

	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Description)
	assert.Equal(t, "c", items[1].Description)
}

func TestBuilder_RemoveLineItemFueraDeRango(t *testing.T) {
	b := ledger.NewBuilder(ledger.DefaultLineDefaults())
	b.AddLineItem()

	assert.ErrorIs(t, b.RemoveLineItem(1), domain.ErrOutOfRange)
	assert.ErrorIs(t, b.RemoveLineItem(-1), domain.ErrOutOfRange)
	assert.Len(t, b.Items(), 1)
}

func TestBuilder_UpdateLineItemValida(t *testing.T) {
	b := ledger.NewBuilder(ledger.DefaultLineDefaults())
	b.AddLineItem()

	err := b.UpdateLineItem(0, entity.LineItem{Quantity: 0, UnitPrice: d(10)})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	err = b.UpdateLineItem(0, entity.LineItem{Quantity: 1, UnitPrice: d(10), TaxRate: d(5)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = b.UpdateLineItem(0, entity.LineItem{Description: "Gants", Quantity: 3, UnitPrice: d(2500), Date: time.Now()})
	require.NoError(t, err)
	assert.True(t, b.Total().Equal(d(7500)))
}

func TestBuilder_ItemsEsCopia(t *testing.T) {
	b := ledger.NewBuilder(ledger.DefaultLineDefaults())
	b.AddLineItem()
	items := b.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, b.Items()[0].Quantity)
}
