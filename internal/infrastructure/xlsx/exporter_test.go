package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/infrastructure/xlsx"
)

func TestExportInvoicesXLSX(t *testing.T) {
	invoices := []*entity.Invoice{
		{
			ID: "f-1", Type: entity.TypeInvoice, ClientName: "Clinique Pasteur",
			TotalAmount: decimal.NewFromInt(100000), AmountPaid: decimal.NewFromInt(40000), Remainder: decimal.NewFromInt(60000),
			Status: entity.StatusPartiallyPaid, Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "r-1", Type: entity.TypeReceipt, ClientName: "M. Traoré", Object: "Acompte",
			TotalAmount: decimal.NewFromInt(15000), AmountPaid: decimal.NewFromInt(15000), Remainder: decimal.Zero,
			Status: entity.StatusPaid, Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	out, err := xlsx.NewExporter().ExportInvoicesXLSX(context.Background(), invoices)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Factures")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Client", rows[0][2])
	assert.Equal(t, "Clinique Pasteur", rows[1][2])
	assert.Equal(t, "60000", rows[1][8])
	assert.Equal(t, "recu", rows[2][1])
	assert.Equal(t, "payee", rows[2][9])
}

func TestExportInvoicesXLSX_Vacio(t *testing.T) {
	out, err := xlsx.NewExporter().ExportInvoicesXLSX(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
