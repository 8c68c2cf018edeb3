package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

// ExportUseCase exporta documentos a XLSX (solo admin).
type ExportUseCase struct {
	invoiceRepo repository.InvoiceRepository
	exporter    InvoiceExporter
	settings    Settings
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(invoiceRepo repository.InvoiceRepository, exporter InvoiceExporter, settings Settings) *ExportUseCase {
	return &ExportUseCase{invoiceRepo: invoiceRepo, exporter: exporter, settings: settings}
}

// ExportXLSX devuelve (bytes, filename) con todos los documentos que cumplen el filtro.
func (uc *ExportUseCase) ExportXLSX(ctx context.Context, s entity.Session, q dto.InvoiceListQuery) ([]byte, string, error) {
	if err := requireAdmin(s); err != nil {
		return nil, "", err
	}
	filter, err := buildFilter(s, q)
	if err != nil {
		return nil, "", err
	}
	// La exportación no pagina.
	filter.Limit, filter.Offset = 0, 0

	list, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportInvoicesXLSX(ctx, list)
	if err != nil {
		return nil, "", fmt.Errorf("exportar xlsx: %w", err)
	}
	return out, exportFileName(uc.settings.now()), nil
}

func exportFileName(now time.Time) string {
	return fmt.Sprintf("factures_%s.xlsx", now.Format("20060102_1504"))
}
