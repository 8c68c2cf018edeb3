package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// TypeTotals agregado por tipo de documento.
type TypeTotals struct {
	Type   entity.DocumentType
	Count  int64
	Amount decimal.Decimal
	Paid   decimal.Decimal
}

// OutstandingTotals agregado de documentos con reliquat > 0.
type OutstandingTotals struct {
	Count     int64
	Remainder decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// userID vacío agrega todos los usuarios.
type AnalyticsRepository interface {
	TotalsByType(ctx context.Context, userID string) ([]TypeTotals, error)
	Outstanding(ctx context.Context, userID string) (OutstandingTotals, error)
}
