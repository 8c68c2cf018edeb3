package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TotalsByType agrupa cantidad, montant_total y montant_paye por tipo de documento.
func (r *AnalyticsRepo) TotalsByType(ctx context.Context, userID string) ([]repository.TypeTotals, error) {
	const query = `
	SELECT
	    type,
	    COUNT(*)                           AS documents,
	    COALESCE(SUM(montant_total), 0)    AS amount,
	    COALESCE(SUM(montant_paye), 0)     AS paid
	FROM factures
	WHERE ($1::TEXT = '' OR user_id::TEXT = $1)
	GROUP BY type
	ORDER BY type`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, storageErr("totals by type", err)
	}
	defer rows.Close()

	var out []repository.TypeTotals
	for rows.Next() {
		var (
			t   repository.TypeTotals
			typ string
		)
		if err := rows.Scan(&typ, &t.Count, &t.Amount, &t.Paid); err != nil {
			return nil, storageErr("scan totals by type", err)
		}
		t.Type = entity.DocumentType(typ)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("totals by type", err)
	}
	return out, nil
}

// Outstanding cuenta los documentos con reliquat > 0 y suma sus reliquats.
func (r *AnalyticsRepo) Outstanding(ctx context.Context, userID string) (repository.OutstandingTotals, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(reliquat), 0)
	FROM factures
	WHERE reliquat > 0
	  AND ($1::TEXT = '' OR user_id::TEXT = $1)`

	var (
		out repository.OutstandingTotals
		sum decimal.Decimal
	)
	if err := r.q.QueryRow(ctx, query, userID).Scan(&out.Count, &sum); err != nil {
		return repository.OutstandingTotals{}, storageErr("outstanding", err)
	}
	out.Remainder = sum
	return out, nil
}
