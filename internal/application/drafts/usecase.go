// Package drafts gestiona los borradores de facturas y recibos antes de su envío.
package drafts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/logger"
)

// InvoiceCreator persiste el documento definitivo (billing.InvoiceUseCase).
type InvoiceCreator interface {
	Create(ctx context.Context, s entity.Session, p ledger.RecordParams) (*entity.Invoice, error)
}

// DraftUseCase edición de borradores guardados en el almacén local.
type DraftUseCase struct {
	repo     repository.DraftRepository
	creator  InvoiceCreator
	defaults ledger.LineDefaults
	settings billing.Settings
	log      *logger.Logger
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(
	repo repository.DraftRepository,
	creator InvoiceCreator,
	defaults ledger.LineDefaults,
	settings billing.Settings,
	log *logger.Logger,
) *DraftUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DraftUseCase{repo: repo, creator: creator, defaults: defaults, settings: settings, log: log.Component("drafts")}
}

// Create abre un borrador vacío con la cabecera indicada.
func (uc *DraftUseCase) Create(ctx context.Context, s entity.Session, in dto.DraftRequest) (*dto.DraftResponse, error) {
	if !s.Valid() {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	d := &entity.Draft{
		ID:        uuid.New().String(),
		UserID:    s.UserID,
		Items:     []entity.LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyHeader(d, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// Get devuelve un borrador del usuario.
func (uc *DraftUseCase) Get(ctx context.Context, s entity.Session, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// List borradores propios.
func (uc *DraftUseCase) List(ctx context.Context, s entity.Session) ([]dto.DraftResponse, error) {
	if !s.Valid() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByUser(ctx, s.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DraftResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toResponse(d))
	}
	return out, nil
}

// UpdateHeader reemplaza tipo, cliente, objeto y monto; las líneas se conservan.
func (uc *DraftUseCase) UpdateHeader(ctx context.Context, s entity.Session, id string, in dto.DraftRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, s, id, func(d *entity.Draft) error {
		return applyHeader(d, in)
	})
}

// AddItem agrega una línea con los valores por defecto.
func (uc *DraftUseCase) AddItem(ctx context.Context, s entity.Session, id string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, s, id, func(d *entity.Draft) error {
		if d.Type != entity.TypeInvoice {
			return fmt.Errorf("%w: un recibo no tiene líneas", domain.ErrValidation)
		}
		b := ledger.NewBuilder(uc.defaults, d.Items...)
		b.AddLineItem()
		d.Items = b.Items()
		return nil
	})
}

// UpdateItem reemplaza la línea index.
func (uc *DraftUseCase) UpdateItem(ctx context.Context, s entity.Session, id string, index int, in dto.LineItemDTO) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, s, id, func(d *entity.Draft) error {
		items, err := billing.LineItemsFromDTO([]dto.LineItemDTO{in}, uc.now())
		if err != nil {
			return err
		}
		b := ledger.NewBuilder(uc.defaults, d.Items...)
		if err := b.UpdateLineItem(index, items[0]); err != nil {
			return err
		}
		d.Items = b.Items()
		return nil
	})
}

// RemoveItem elimina la línea index.
func (uc *DraftUseCase) RemoveItem(ctx context.Context, s entity.Session, id string, index int) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, s, id, func(d *entity.Draft) error {
		b := ledger.NewBuilder(uc.defaults, d.Items...)
		if err := b.RemoveLineItem(index); err != nil {
			return err
		}
		d.Items = b.Items()
		return nil
	})
}

// Delete descarta el borrador.
func (uc *DraftUseCase) Delete(ctx context.Context, s entity.Session, id string) error {
	if _, err := uc.load(ctx, s, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Submit convierte el borrador en factura o recibo y lo elimina del almacén local.
// Si la creación falla el borrador se conserva intacto.
func (uc *DraftUseCase) Submit(ctx context.Context, s entity.Session, id string, in dto.SubmitDraftRequest) (*dto.InvoiceResponse, error) {
	d, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	inv, err := uc.creator.Create(ctx, s, ledger.RecordParams{
		Type:           d.Type,
		ClientName:     d.ClientName,
		ClientPhone:    d.ClientPhone,
		ClientEmail:    d.ClientEmail,
		Items:          d.Items,
		Amount:         d.Amount,
		Object:         d.Object,
		InitialPayment: in.InitialPayment,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, d.ID); err != nil {
		// El documento ya existe; un borrador huérfano no invalida el envío.
		uc.log.Warn().Err(err).Str("draft_id", d.ID).Str("invoice_id", inv.ID).Msg("no se pudo borrar el borrador enviado")
	}
	uc.log.Info().Str("draft_id", d.ID).Str("invoice_id", inv.ID).Msg("borrador enviado")
	return billing.ToInvoiceResponse(inv), nil
}

func (uc *DraftUseCase) mutate(ctx context.Context, s entity.Session, id string, fn func(*entity.Draft) error) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, s, id)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = uc.now()
	if err := uc.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

func (uc *DraftUseCase) load(ctx context.Context, s entity.Session, id string) (*entity.Draft, error) {
	if !s.Valid() {
		return nil, domain.ErrUnauthorized
	}
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.UserID != s.UserID && !s.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

func (uc *DraftUseCase) now() time.Time {
	if uc.settings.Now != nil {
		return uc.settings.Now()
	}
	return time.Now()
}

func applyHeader(d *entity.Draft, in dto.DraftRequest) error {
	t := entity.DocumentType(in.Type)
	if !t.Valid() {
		return fmt.Errorf("%w: tipo de documento %q", domain.ErrValidation, in.Type)
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("%w: monto negativo", domain.ErrOutOfRange)
	}
	d.Type = t
	d.ClientName = strings.TrimSpace(in.ClientName)
	d.ClientPhone = strings.TrimSpace(in.ClientPhone)
	d.ClientEmail = strings.TrimSpace(in.ClientEmail)
	d.Object = strings.TrimSpace(in.Object)
	d.Amount = in.Amount
	if t == entity.TypeReceipt {
		d.Items = []entity.LineItem{}
	} else {
		d.Amount = decimal.Zero
	}
	return nil
}

func toResponse(d *entity.Draft) *dto.DraftResponse {
	total := d.Amount
	if d.Type == entity.TypeInvoice {
		total = ledger.ComputeTotal(d.Items)
	}
	return &dto.DraftResponse{
		ID:          d.ID,
		Type:        string(d.Type),
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
		ClientEmail: d.ClientEmail,
		Object:      d.Object,
		Amount:      d.Amount,
		Items:       billing.LineItemsToDTO(d.Items),
		Total:       total,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
