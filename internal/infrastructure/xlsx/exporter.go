// Package xlsx exporta facturas y recibos a hojas de cálculo.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appbilling "github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

var _ appbilling.InvoiceExporter = (*Exporter)(nil)

const sheet = "Factures"

var headers = []string{
	"Date", "Type", "Client", "Téléphone", "Email", "Objet",
	"Montant total", "Montant payé", "Reliquat", "Statut", "Utilisateur", "ID",
}

// Exporter genera un libro XLSX con una fila por documento.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportInvoicesXLSX devuelve el libro en bytes.
func (e *Exporter) ExportInvoicesXLSX(ctx context.Context, invoices []*entity.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, style)
	}

	for i, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, inv.Date.Format("2006-01-02"))
		write(2, string(inv.Type))
		write(3, inv.ClientName)
		write(4, inv.ClientPhone)
		write(5, inv.ClientEmail)
		write(6, inv.Object)
		write(7, inv.TotalAmount.InexactFloat64())
		write(8, inv.AmountPaid.InexactFloat64())
		write(9, inv.Remainder.InexactFloat64())
		write(10, string(inv.Status))
		write(11, inv.UserID)
		write(12, inv.ID)
	}

	_ = f.SetColWidth(sheet, "A", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 30)
	_ = f.SetColWidth(sheet, "D", "E", 22)
	_ = f.SetColWidth(sheet, "F", "F", 36)
	_ = f.SetColWidth(sheet, "G", "I", 16)
	_ = f.SetColWidth(sheet, "J", "J", 12)
	_ = f.SetColWidth(sheet, "K", "L", 38)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
