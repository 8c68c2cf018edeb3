package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// Valores por defecto de una línea nueva.
var (
	DefaultUnitPrice = decimal.NewFromInt(1000)
	DefaultTaxRate   = decimal.NewFromInt(18) // TVA 18%
)

// LineDefaults valores iniciales para AddLineItem.
type LineDefaults struct {
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal // también es la única tasa distinta de 0 aceptada
}

// DefaultLineDefaults devuelve los valores por defecto de facturación.
func DefaultLineDefaults() LineDefaults {
	return LineDefaults{UnitPrice: DefaultUnitPrice, TaxRate: DefaultTaxRate}
}

// Builder arma la lista ordenada de líneas de un borrador de factura.
type Builder struct {
	items    []entity.LineItem
	defaults LineDefaults
	now      func() time.Time
}

// NewBuilder construye un builder con líneas iniciales (se copian).
func NewBuilder(defaults LineDefaults, items ...entity.LineItem) *Builder {
	cp := make([]entity.LineItem, len(items))
	copy(cp, items)
	return &Builder{items: cp, defaults: defaults, now: time.Now}
}

// AddLineItem agrega una línea con cantidad 1, precio y TVA por defecto y fecha de hoy.
func (b *Builder) AddLineItem() entity.LineItem {
	now := b.now()
	item := entity.LineItem{
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Quantity:  1,
		UnitPrice: b.defaults.UnitPrice,
		TaxRate:   b.defaults.TaxRate,
	}
	b.items = append(b.items, item)
	return item
}

// RemoveLineItem elimina la línea en index.
func (b *Builder) RemoveLineItem(index int) error {
	if index < 0 || index >= len(b.items) {
		return fmt.Errorf("%w: línea %d inexistente (hay %d)", domain.ErrOutOfRange, index, len(b.items))
	}
	b.items = append(b.items[:index], b.items[index+1:]...)
	return nil
}

// UpdateLineItem reemplaza la línea en index tras validarla.
func (b *Builder) UpdateLineItem(index int, item entity.LineItem) error {
	if index < 0 || index >= len(b.items) {
		return fmt.Errorf("%w: línea %d inexistente (hay %d)", domain.ErrOutOfRange, index, len(b.items))
	}
	if err := ValidateLineItem(item, b.defaults.TaxRate); err != nil {
		return err
	}
	b.items[index] = item
	return nil
}

// Items devuelve una copia de las líneas.
func (b *Builder) Items() []entity.LineItem {
	cp := make([]entity.LineItem, len(b.items))
	copy(cp, b.items)
	return cp
}

// Total devuelve ComputeTotal de las líneas actuales.
func (b *Builder) Total() decimal.Decimal {
	return ComputeTotal(b.items)
}

// ComputeTotal suma quantity × unit_price de todas las líneas (0 si no hay).
func ComputeTotal(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

// ComputeTax suma el impuesto de cada línea según su tasa.
func ComputeTax(items []entity.LineItem) decimal.Decimal {
	tax := decimal.Zero
	for _, it := range items {
		tax = tax.Add(it.Tax())
	}
	return tax
}

// ValidateLineItem verifica cantidad >= 1, precio >= 0 con MoneyScale decimales y tasa 0 o standardRate.
func ValidateLineItem(item entity.LineItem, standardRate decimal.Decimal) error {
	if item.Quantity < 1 {
		return fmt.Errorf("%w: cantidad %d debe ser >= 1", domain.ErrOutOfRange, item.Quantity)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: precio unitario negativo", domain.ErrOutOfRange)
	}
	if err := checkScale("precio unitario", item.UnitPrice); err != nil {
		return err
	}
	if !item.TaxRate.IsZero() && !item.TaxRate.Equal(standardRate) {
		return fmt.Errorf("%w: tasa de TVA %s no permitida (0 o %s)", domain.ErrValidation, item.TaxRate, standardRate)
	}
	return nil
}
