// Package analytics contiene el resumen de cobros del dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/money"
)

// DashboardUseCase agrega totales por tipo y saldos pendientes.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a la tabla de facturas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	currency      string
}

// NewDashboardUseCase construye el caso de uso. currency vacío usa FCFA.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, currency string) *DashboardUseCase {
	if currency == "" {
		currency = money.DefaultCurrency
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, currency: currency}
}

// GetSummary construye el DashboardSummaryDTO. Un admin ve todos los documentos;
// el resto solo los propios.
//
// Dos llamadas en paralelo:
//  1. TotalsByType  → totales y conteos de facturas y recibos
//  2. Outstanding   → documentos con reliquat > 0
func (uc *DashboardUseCase) GetSummary(ctx context.Context, s entity.Session) (*dto.DashboardSummaryDTO, error) {
	if !s.Valid() {
		return nil, domain.ErrUnauthorized
	}
	scope := s.UserID
	if s.IsAdmin() {
		scope = ""
	}

	type totalsResult struct {
		rows []repository.TypeTotals
		err  error
	}
	type outstandingResult struct {
		out repository.OutstandingTotals
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	outCh := make(chan outstandingResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.TotalsByType(ctx, scope)
		totalsCh <- totalsResult{rows, err}
	}()
	go func() {
		out, err := uc.analyticsRepo.Outstanding(ctx, scope)
		outCh <- outstandingResult{out, err}
	}()

	totals := <-totalsCh
	outstanding := <-outCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales por tipo: %w", totals.err)
	}
	if outstanding.err != nil {
		return nil, fmt.Errorf("dashboard: saldos pendientes: %w", outstanding.err)
	}

	sum := &dto.DashboardSummaryDTO{
		InvoiceTotal:      decimal.Zero,
		ReceiptTotal:      decimal.Zero,
		GrandTotal:        decimal.Zero,
		PaidTotal:         decimal.Zero,
		OutstandingCount:  outstanding.out.Count,
		OutstandingAmount: outstanding.out.Remainder,
		Currency:          uc.currency,
	}
	for _, row := range totals.rows {
		switch row.Type {
		case entity.TypeInvoice:
			sum.InvoiceTotal = sum.InvoiceTotal.Add(row.Amount)
			sum.InvoiceCount += row.Count
		case entity.TypeReceipt:
			sum.ReceiptTotal = sum.ReceiptTotal.Add(row.Amount)
			sum.ReceiptCount += row.Count
		}
		sum.GrandTotal = sum.GrandTotal.Add(row.Amount)
		sum.PaidTotal = sum.PaidTotal.Add(row.Paid)
		sum.Documents += row.Count
	}
	return sum, nil
}
