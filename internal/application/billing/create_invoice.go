package billing

import (
	"context"
	"errors"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

// CreateInvoice valida la petición, construye el documento y lo persiste.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, s entity.Session, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	now := uc.settings.now()
	items, err := LineItemsFromDTO(in.Items, now)
	if err != nil {
		return nil, err
	}
	inv, err := uc.Create(ctx, s, ledger.RecordParams{
		Type:           entity.DocumentType(in.Type),
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		ClientEmail:    in.ClientEmail,
		Items:          items,
		Amount:         in.Amount,
		Object:         in.Object,
		InitialPayment: in.InitialPayment,
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Create persiste el documento y su primer pago (acompte o recibo) en una sola transacción.
// Owner, TaxRate y Now de p se completan desde la sesión y la configuración.
func (uc *InvoiceUseCase) Create(ctx context.Context, s entity.Session, p ledger.RecordParams) (*entity.Invoice, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	p.Owner = s
	p.TaxRate = uc.settings.TaxRate
	if p.Now.IsZero() {
		p.Now = uc.settings.now()
	}
	inv, entry, err := ledger.NewRecord(p)
	if err != nil {
		return nil, err
	}

	attempt := 0
	err = withRetry(ctx, uc.settings.Retry, func() error {
		attempt++
		err := uc.txRunner.RunLedger(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
			if err := invoiceRepo.Create(ctx, inv); err != nil {
				return err
			}
			if entry != nil {
				return paymentRepo.Create(ctx, entry)
			}
			return nil
		})
		// El id se genera una sola vez: si ya existe, un intento anterior confirmó
		// la transacción aunque la respuesta del commit se perdiera.
		if attempt > 1 && errors.Is(err, domain.ErrAlreadyExists) {
			uc.log.Warn().Str("invoice_id", inv.ID).Msg("commit previo confirmado en reintento")
			return nil
		}
		return err
	})
	if err != nil {
		uc.log.Error().Err(err).Str("type", string(inv.Type)).Msg("no se pudo crear el documento")
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("type", string(inv.Type)).
		Str("user_id", s.UserID).
		Str("total", inv.TotalAmount.String()).
		Str("status", string(inv.Status)).
		Msg("documento creado")
	return inv, nil
}
