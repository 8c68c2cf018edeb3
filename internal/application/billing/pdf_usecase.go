package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/logger"
	"github.com/jhoicas/facturation-api/pkg/money"
)

// PDFUseCase genera el PDF de un documento y opcionalmente lo envía por correo.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	generator   InvoicePDFGenerator
	mailer      DocumentMailer // nil = envío deshabilitado
	settings    Settings
	log         *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	generator InvoicePDFGenerator,
	mailer DocumentMailer,
	settings Settings,
	log *logger.Logger,
) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		generator:   generator,
		mailer:      mailer,
		settings:    settings,
		log:         log.Component("documents"),
	}
}

// DownloadInvoicePDF devuelve (pdfBytes, filename).
//
// Retorna:
//   - domain.ErrNotFound   si el documento no existe.
//   - domain.ErrForbidden  si pertenece a otro usuario y la sesión no es admin.
//   - domain.ErrRender     si el generador falla.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, s entity.Session, invoiceID string) ([]byte, string, error) {
	inv, err := loadAuthorized(ctx, uc.invoiceRepo, s, invoiceID)
	if err != nil {
		return nil, "", err
	}
	return uc.render(ctx, inv)
}

// SendInvoice genera el PDF y lo envía a to (o al email del cliente si to está vacío).
func (uc *PDFUseCase) SendInvoice(ctx context.Context, s entity.Session, invoiceID string, in dto.SendInvoiceRequest) (*dto.SendInvoiceResponse, error) {
	if uc.mailer == nil {
		return nil, fmt.Errorf("%w: envío de correo no configurado", domain.ErrServiceUnavailable)
	}
	inv, err := loadAuthorized(ctx, uc.invoiceRepo, s, invoiceID)
	if err != nil {
		return nil, err
	}
	to := strings.TrimSpace(in.To)
	if to == "" {
		to = inv.ClientEmail
	}
	if to == "" || !strings.Contains(to, "@") {
		return nil, fmt.Errorf("%w: destinatario inválido", domain.ErrValidation)
	}

	pdfBytes, filename, err := uc.render(ctx, inv)
	if err != nil {
		return nil, err
	}
	label := "facture"
	if inv.Type == entity.TypeReceipt {
		label = "reçu"
	}
	msg := MailMessage{
		To:      to,
		Subject: fmt.Sprintf("Votre %s %s", label, uc.settings.CompanyName),
		Body: fmt.Sprintf("Bonjour,\n\nVeuillez trouver ci-joint votre %s.\n\nMontant : %s\n\nCordialement,\n%s",
			label, money.FormatCurrency(inv.TotalAmount, uc.settings.Currency), uc.settings.CompanyName),
		AttachmentName: filename,
		Attachment:     pdfBytes,
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("envío de correo fallido")
		return nil, err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("to", to).Msg("documento enviado")
	return &dto.SendInvoiceResponse{To: to, FileName: filename}, nil
}

func (uc *PDFUseCase) render(ctx context.Context, inv *entity.Invoice) ([]byte, string, error) {
	payments, err := uc.paymentRepo.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, payments)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrRender, err)
	}
	return pdfBytes, DocumentFileName(inv), nil
}
