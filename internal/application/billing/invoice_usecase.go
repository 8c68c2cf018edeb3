package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/logger"
)

// InvoiceUseCase alta, consulta y borrado de facturas y recibos.
type InvoiceUseCase struct {
	txRunner    LedgerTxRunner
	invoiceRepo repository.InvoiceRepository
	settings    Settings
	log         *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner LedgerTxRunner, invoiceRepo repository.InvoiceRepository, settings Settings, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		settings:    settings,
		log:         log.Component("invoices"),
	}
}

// GetInvoice devuelve un documento visible para la sesión.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, s entity.Session, id string) (*dto.InvoiceResponse, error) {
	inv, err := loadAuthorized(ctx, uc.invoiceRepo, s, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// ListInvoices lista los documentos del usuario; un admin ve todos.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, s entity.Session, q dto.InvoiceListQuery) (*dto.InvoiceListResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	filter, err := buildFilter(s, q)
	if err != nil {
		return nil, err
	}
	list, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, inv := range list {
		out.Items = append(out.Items, *ToInvoiceResponse(inv))
	}
	return out, nil
}

// DeleteInvoice borra un documento y sus pagos (solo admin).
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, s entity.Session, id string) error {
	if err := requireAdmin(s); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	var deleted bool
	err := withRetry(ctx, uc.settings.Retry, func() error {
		var err error
		deleted, err = uc.invoiceRepo.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	uc.log.Info().Str("invoice_id", id).Str("by", s.UserID).Msg("documento eliminado")
	return nil
}

// DeleteAll borra todos los documentos y pagos (solo admin, irreversible).
func (uc *InvoiceUseCase) DeleteAll(ctx context.Context, s entity.Session) (int64, error) {
	if err := requireAdmin(s); err != nil {
		return 0, err
	}
	var n int64
	err := withRetry(ctx, uc.settings.Retry, func() error {
		var err error
		n, err = uc.invoiceRepo.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	uc.log.Warn().Int64("deleted", n).Str("by", s.UserID).Msg("borrado masivo de documentos")
	return n, nil
}

func buildFilter(s entity.Session, q dto.InvoiceListQuery) (repository.InvoiceFilter, error) {
	q.DefaultPage()
	f := repository.InvoiceFilter{
		OnlyOutstanding: q.Outstanding,
		Limit:           q.Limit,
		Offset:          q.Offset,
	}
	if !s.IsAdmin() {
		f.UserID = s.UserID
	}
	if q.Type != "" {
		t := entity.DocumentType(q.Type)
		if !t.Valid() {
			return f, fmt.Errorf("%w: tipo %q", domain.ErrValidation, q.Type)
		}
		f.Type = t
	}
	if q.Status != "" {
		st := entity.PaymentStatus(q.Status)
		switch st {
		case entity.StatusUnpaid, entity.StatusPartiallyPaid, entity.StatusPaid:
			f.Status = st
		default:
			return f, fmt.Errorf("%w: estado %q", domain.ErrValidation, q.Status)
		}
	}
	return f, nil
}
