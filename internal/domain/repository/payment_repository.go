package repository

import (
	"context"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// PaymentRepository puerto de persistencia de los pagos (append-only).
type PaymentRepository interface {
	Create(ctx context.Context, entry *entity.PaymentEntry) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.PaymentEntry, error)
}
