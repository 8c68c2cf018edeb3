package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/logger"
)

// PaymentUseCase aplica pagos sobre facturas.
//
// Cada pago es una transacción: SELECT ... FOR UPDATE del documento, validación pura
// (ledger.ApplyToInvoice), UPDATE del saldo e INSERT del pago. Dos pagos concurrentes
// sobre el mismo documento quedan serializados por el bloqueo de fila.
type PaymentUseCase struct {
	txRunner    LedgerTxRunner
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	settings    Settings
	log         *logger.Logger
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner LedgerTxRunner,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	settings Settings,
	log *logger.Logger,
) *PaymentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		settings:    settings,
		log:         log.Component("payments"),
	}
}

// ApplyPayment registra un pago de amount. amount = 0 no modifica nada.
// Errores: ErrOutOfRange si amount < 0 o amount > reliquat; ErrNotFound; ErrForbidden;
// ErrStorage si la base sigue fallando tras los reintentos.
func (uc *PaymentUseCase) ApplyPayment(ctx context.Context, s entity.Session, invoiceID string, amount decimal.Decimal) (*dto.ApplyPaymentResponse, error) {
	return uc.apply(ctx, s, invoiceID, func(*entity.Invoice) decimal.Decimal { return amount })
}

// Settle salda el documento: paga exactamente el reliquat actual.
func (uc *PaymentUseCase) Settle(ctx context.Context, s entity.Session, invoiceID string) (*dto.ApplyPaymentResponse, error) {
	return uc.apply(ctx, s, invoiceID, func(inv *entity.Invoice) decimal.Decimal { return inv.Remainder })
}

// ListPayments historial de pagos de un documento visible para la sesión.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, s entity.Session, invoiceID string) ([]dto.PaymentResponse, error) {
	if _, err := loadAuthorized(ctx, uc.invoiceRepo, s, invoiceID); err != nil {
		return nil, err
	}
	entries, err := uc.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *ToPaymentResponse(e))
	}
	return out, nil
}

func (uc *PaymentUseCase) apply(
	ctx context.Context,
	s entity.Session,
	invoiceID string,
	amountFor func(*entity.Invoice) decimal.Decimal,
) (*dto.ApplyPaymentResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	if err := checkID(invoiceID); err != nil {
		return nil, err
	}

	var (
		result *entity.Invoice
		entry  *entity.PaymentEntry
	)
	err := withRetry(ctx, uc.settings.Retry, func() error {
		return uc.txRunner.RunLedger(ctx, func(invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) error {
			inv, err := invoiceRepo.GetByIDForUpdate(ctx, invoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			if err := canAccess(s, inv); err != nil {
				return err
			}

			e, err := ledger.ApplyToInvoice(inv, amountFor(inv), s.UserID, uc.settings.now())
			if err != nil {
				return err
			}
			if e != nil {
				if err := invoiceRepo.UpdateBalance(ctx, inv); err != nil {
					return err
				}
				if err := paymentRepo.Create(ctx, e); err != nil {
					return err
				}
			}
			result, entry = inv, e
			return nil
		})
	})
	if err != nil {
		if isTransient(err) {
			uc.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("pago no persistido tras reintentos")
		} else {
			uc.log.Warn().Err(err).Str("invoice_id", invoiceID).Str("user_id", s.UserID).Msg("pago rechazado")
		}
		return nil, err
	}

	if entry != nil {
		uc.log.Info().
			Str("invoice_id", result.ID).
			Str("amount", entry.Amount.String()).
			Str("paid", result.AmountPaid.String()).
			Str("remainder", result.Remainder.String()).
			Str("status", string(result.Status)).
			Msg("pago aplicado")
	}
	return &dto.ApplyPaymentResponse{
		Invoice: *ToInvoiceResponse(result),
		Payment: ToPaymentResponse(entry),
	}, nil
}
