package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/infrastructure/pdf"
)

var letterhead = pdf.Letterhead{
	CompanyName: "MABOU-INSTRUMED-SARL",
	RCCM:        "Ma.Bko.2023.M11004",
	NIF:         "084148985H",
	Address:     "HAMDALLAYE ACI 2000",
	Phone:       "+223 74 56 43 95",
}

func sampleInvoice() *entity.Invoice {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		ID:         "3f1c2a9e-0000-4000-8000-000000000001",
		Type:       entity.TypeInvoice,
		ClientName: "Clinique Pasteur",
		Items: []entity.LineItem{
			{Description: "Stéthoscope", Date: day, Quantity: 2, UnitPrice: decimal.NewFromInt(25000), TaxRate: decimal.NewFromInt(18)},
			{Description: "Thermomètre", Date: day, Quantity: 3, UnitPrice: decimal.NewFromInt(10000), TaxRate: decimal.Zero},
		},
		TotalAmount: decimal.NewFromInt(80000),
		AmountPaid:  decimal.NewFromInt(30000),
		Remainder:   decimal.NewFromInt(50000),
		Status:      entity.StatusPartiallyPaid,
		Date:        day,
	}
}

func TestGenerateInvoicePDF_Factura(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(letterhead)
	payments := []*entity.PaymentEntry{
		{ID: "p1", Amount: decimal.NewFromInt(30000), Mode: entity.PaymentModeManual, CreatedAt: time.Now()},
	}

	out, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice(), payments)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_Recibo(t *testing.T) {
	inv := sampleInvoice()
	inv.Type = entity.TypeReceipt
	inv.Items = nil
	inv.Object = "Acompte matériel"
	inv.AmountPaid = inv.TotalAmount
	inv.Remainder = decimal.Zero
	inv.Status = entity.StatusPaid

	out, err := pdf.NewMarotoPDFGenerator(letterhead).GenerateInvoicePDF(context.Background(), inv, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_DocumentoNil(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator(letterhead).GenerateInvoicePDF(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrRender)
}
