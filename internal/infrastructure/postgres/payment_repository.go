package postgres

import (
	"context"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo historial de pagos en la tabla paiements.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador (pool o tx).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create registra un pago.
func (r *PaymentRepo) Create(ctx context.Context, e *entity.PaymentEntry) error {
	query := `
		INSERT INTO paiements (id, facture_id, montant, applied_by, mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.InvoiceID, e.Amount, e.AppliedBy, e.Mode, e.CreatedAt); err != nil {
		return storageErr("insert paiement", err)
	}
	return nil
}

// ListByInvoice devuelve los pagos de una factura en orden cronológico.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.PaymentEntry, error) {
	if !isUUID(invoiceID) {
		return nil, nil
	}
	query := `
		SELECT id, facture_id, montant, applied_by, mode, created_at
		FROM paiements WHERE facture_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, storageErr("list paiements", err)
	}
	defer rows.Close()

	var list []*entity.PaymentEntry
	for rows.Next() {
		var e entity.PaymentEntry
		if err := rows.Scan(&e.ID, &e.InvoiceID, &e.Amount, &e.AppliedBy, &e.Mode, &e.CreatedAt); err != nil {
			return nil, storageErr("scan paiement", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list paiements", err)
	}
	return list, nil
}
