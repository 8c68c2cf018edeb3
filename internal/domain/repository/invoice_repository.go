package repository

import (
	"context"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// InvoiceFilter criterios de consulta sobre la colección de facturas.
// Campos vacíos no filtran.
type InvoiceFilter struct {
	UserID          string
	Type            entity.DocumentType
	Status          entity.PaymentStatus
	OnlyOutstanding bool // reliquat > 0
	Limit           int
	Offset          int
}

// InvoiceRepository define el puerto de persistencia de la colección "factures".
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// UpdateBalance persiste montant_paye, reliquat, status y updated_at.
	UpdateBalance(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error)
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteAll elimina todas las facturas y sus pagos. Devuelve el número eliminado.
	DeleteAll(ctx context.Context) (int64, error)
}
