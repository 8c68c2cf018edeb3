package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

type fakeGenerator struct {
	err      error
	payments int
}

func (g *fakeGenerator) GenerateInvoicePDF(_ context.Context, _ *entity.Invoice, payments []*entity.PaymentEntry) ([]byte, error) {
	g.payments = len(payments)
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

type fakeMailer struct {
	sent []billing.MailMessage
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg billing.MailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeExporter struct {
	rows int
}

func (e *fakeExporter) ExportInvoicesXLSX(_ context.Context, invoices []*entity.Invoice) ([]byte, error) {
	e.rows = len(invoices)
	return []byte("PK"), nil
}

func newPDFUseCase(f *fixture, gen billing.InvoicePDFGenerator, mailer billing.DocumentMailer) *billing.PDFUseCase {
	return billing.NewPDFUseCase(&memInvoiceRepo{st: f.store}, &memPaymentRepo{st: f.store}, gen, mailer, testSettings(), nil)
}

// ── PDF ───────────────────────────────────────────────────────────────────────

func TestDownloadInvoicePDF(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := seedInvoice(t, f)
	_, err := f.payments.ApplyPayment(ctx, alice, id, d(1000))
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := newPDFUseCase(f, gen, nil)

	out, name, err := uc.DownloadInvoicePDF(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(out))
	assert.Equal(t, "facture_Pharmacie_Kaba_20260302.pdf", name)
	assert.Equal(t, 1, gen.payments)

	_, _, err = uc.DownloadInvoicePDF(ctx, bob, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDownloadInvoicePDF_FalloDeRender(t *testing.T) {
	f := newFixture()
	id := seedInvoice(t, f)
	uc := newPDFUseCase(f, &fakeGenerator{err: errors.New("fuente no encontrada")}, nil)

	_, _, err := uc.DownloadInvoicePDF(context.Background(), alice, id)
	assert.ErrorIs(t, err, domain.ErrRender)
}

// ── Envío por correo ──────────────────────────────────────────────────────────

func TestSendInvoice_SinSMTP(t *testing.T) {
	f := newFixture()
	id := seedInvoice(t, f)
	uc := newPDFUseCase(f, &fakeGenerator{}, nil)

	_, err := uc.SendInvoice(context.Background(), alice, id, dto.SendInvoiceRequest{To: "x@y.z"})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestSendInvoice_UsaEmailDelCliente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.invoices.CreateInvoice(ctx, alice, invoiceRequest())
	require.NoError(t, err)

	mailer := &fakeMailer{}
	uc := newPDFUseCase(f, &fakeGenerator{}, mailer)

	resp, err := uc.SendInvoice(ctx, alice, created.ID, dto.SendInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "compta@pasteur.ml", resp.To)
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, resp.FileName, msg.AttachmentName)
	assert.Contains(t, msg.Body, "80 000 FCFA")
	assert.Contains(t, msg.Subject, "facture")
}

func TestSendInvoice_SinDestinatario(t *testing.T) {
	f := newFixture()
	id := seedInvoice(t, f) // sin client_email
	uc := newPDFUseCase(f, &fakeGenerator{}, &fakeMailer{})

	_, err := uc.SendInvoice(context.Background(), alice, id, dto.SendInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ── Export ────────────────────────────────────────────────────────────────────

func TestExportXLSX_SoloAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedInvoice(t, f)
	_, err := f.invoices.CreateInvoice(ctx, bob, invoiceRequest())
	require.NoError(t, err)

	exp := &fakeExporter{}
	uc := billing.NewExportUseCase(&memInvoiceRepo{st: f.store}, exp, testSettings())

	_, _, err = uc.ExportXLSX(ctx, alice, dto.InvoiceListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, name, err := uc.ExportXLSX(ctx, admin, dto.InvoiceListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "PK", string(out))
	assert.Equal(t, "factures_20260302_0930.xlsx", name)
	assert.Equal(t, 2, exp.rows)
}
