package drafts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/application/drafts"
	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/ledger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type memDraftRepo struct {
	mu      sync.Mutex
	drafts  map[string]entity.Draft
	failDel bool
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{drafts: map[string]entity.Draft{}}
}

func (r *memDraftRepo) Save(_ context.Context, d *entity.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	cp.Items = append([]entity.LineItem(nil), d.Items...)
	r.drafts[d.ID] = cp
	return nil
}

func (r *memDraftRepo) GetByID(_ context.Context, id string) (*entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	d.Items = append([]entity.LineItem(nil), d.Items...)
	return &d, nil
}

func (r *memDraftRepo) ListByUser(_ context.Context, userID string) ([]*entity.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Draft
	for _, d := range r.drafts {
		if d.UserID == userID {
			cp := d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memDraftRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDel {
		return domain.ErrStorage
	}
	delete(r.drafts, id)
	return nil
}

type fakeCreator struct {
	got ledger.RecordParams
	err error
}

func (c *fakeCreator) Create(_ context.Context, s entity.Session, p ledger.RecordParams) (*entity.Invoice, error) {
	c.got = p
	if c.err != nil {
		return nil, c.err
	}
	p.Owner = s
	p.Now = fixedNow
	inv, _, err := ledger.NewRecord(p)
	return inv, err
}

var (
	fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	alice    = entity.Session{UserID: "u-alice", Email: "alice@example.com", Role: entity.RoleUser}
	bob      = entity.Session{UserID: "u-bob", Email: "bob@example.com", Role: entity.RoleUser}
	admin    = entity.Session{UserID: "u-admin", Email: "admin@example.com", Role: entity.RoleAdmin}
)

func newUseCase() (*drafts.DraftUseCase, *memDraftRepo, *fakeCreator) {
	repo := newMemDraftRepo()
	creator := &fakeCreator{}
	settings := billing.DefaultSettings()
	settings.Now = func() time.Time { return fixedNow }
	return drafts.NewDraftUseCase(repo, creator, ledger.DefaultLineDefaults(), settings, nil), repo, creator
}

func invoiceHeader() dto.DraftRequest {
	return dto.DraftRequest{Type: "facture", ClientName: "  Clinique Pasteur ", ClientEmail: "compta@pasteur.ml"}
}

// ── edición ───────────────────────────────────────────────────────────────────

func TestDraft_CrearYAgregarLineas(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	d, err := uc.Create(ctx, alice, invoiceHeader())
	require.NoError(t, err)
	assert.Equal(t, "Clinique Pasteur", d.ClientName)
	assert.Empty(t, d.Items)
	assert.True(t, d.Total.IsZero())

	d, err = uc.AddItem(ctx, alice, d.ID)
	require.NoError(t, err)
	d, err = uc.AddItem(ctx, alice, d.ID)
	require.NoError(t, err)
	require.Len(t, d.Items, 2)
	assert.Equal(t, 1, d.Items[0].Quantity)
	assert.True(t, d.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, d.Total.Equal(decimal.NewFromInt(2000)))

	d, err = uc.UpdateItem(ctx, alice, d.ID, 1, dto.LineItemDTO{
		Description: "Tensiomètre", Date: "2026-03-01", Quantity: 3,
		UnitPrice: decimal.NewFromInt(15000), TaxRate: decimal.NewFromInt(18),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tensiomètre", d.Items[1].Description)
	assert.True(t, d.Total.Equal(decimal.NewFromInt(46000)))

	d, err = uc.RemoveItem(ctx, alice, d.ID, 0)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.True(t, d.Total.Equal(decimal.NewFromInt(45000)))
	assert.Equal(t, fixedNow, d.UpdatedAt)
}

func TestDraft_ErroresDeLinea(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	d, err := uc.Create(ctx, alice, invoiceHeader())
	require.NoError(t, err)

	_, err = uc.RemoveItem(ctx, alice, d.ID, 0)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = uc.AddItem(ctx, alice, d.ID)
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, alice, d.ID, 0, dto.LineItemDTO{Quantity: 0, UnitPrice: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = uc.UpdateItem(ctx, alice, d.ID, 0, dto.LineItemDTO{Quantity: 1, TaxRate: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.UpdateItem(ctx, alice, d.ID, 0, dto.LineItemDTO{Quantity: 1, Date: "02/03/2026"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := uc.Get(ctx, alice, d.ID)
	require.NoError(t, err)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(1000)), "una edición rechazada no modifica el borrador")
}

func TestDraft_ReciboSinLineas(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	d, err := uc.Create(ctx, alice, dto.DraftRequest{Type: "recu", ClientName: "M. Traoré", Object: "Location", Amount: decimal.NewFromInt(25000)})
	require.NoError(t, err)
	assert.True(t, d.Total.Equal(decimal.NewFromInt(25000)))

	_, err = uc.AddItem(ctx, alice, d.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, alice, dto.DraftRequest{Type: "recu", Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = uc.Create(ctx, alice, dto.DraftRequest{Type: "devis"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDraft_AccesoPorDueno(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()
	d, err := uc.Create(ctx, alice, invoiceHeader())
	require.NoError(t, err)

	_, err = uc.Get(ctx, bob, d.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(ctx, admin, d.ID)
	assert.NoError(t, err)

	_, err = uc.Get(ctx, alice, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(ctx, entity.Session{}, d.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	mine, err := uc.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	others, err := uc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, others)

	require.ErrorIs(t, uc.Delete(ctx, bob, d.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, alice, d.ID))
	_, err = uc.Get(ctx, alice, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── envío ─────────────────────────────────────────────────────────────────────

func TestDraft_SubmitCreaFacturaYBorra(t *testing.T) {
	uc, repo, creator := newUseCase()
	ctx := context.Background()
	d, err := uc.Create(ctx, alice, invoiceHeader())
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, alice, d.ID)
	require.NoError(t, err)

	inv, err := uc.Submit(ctx, alice, d.ID, dto.SubmitDraftRequest{InitialPayment: decimal.NewFromInt(400)})
	require.NoError(t, err)
	assert.Equal(t, "partielle", inv.Status)
	assert.True(t, inv.Remainder.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, entity.TypeInvoice, creator.got.Type)
	assert.Len(t, creator.got.Items, 1)
	assert.Empty(t, repo.drafts)
}

func TestDraft_SubmitFallidoConservaBorrador(t *testing.T) {
	uc, repo, creator := newUseCase()
	ctx := context.Background()
	d, err := uc.Create(ctx, alice, invoiceHeader())
	require.NoError(t, err)

	creator.err = errors.Join(domain.ErrStorage, errors.New("conexión perdida"))
	_, err = uc.Submit(ctx, alice, d.ID, dto.SubmitDraftRequest{})
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Len(t, repo.drafts, 1)
}

func TestDraft_SubmitToleraFalloAlBorrar(t *testing.T) {
	uc, repo, _ := newUseCase()
	ctx := context.Background()
	d, err := uc.Create(ctx, alice, dto.DraftRequest{Type: "recu", ClientName: "M. Traoré", Amount: decimal.NewFromInt(5000)})
	require.NoError(t, err)

	repo.failDel = true
	inv, err := uc.Submit(ctx, alice, d.ID, dto.SubmitDraftRequest{})
	require.NoError(t, err)
	assert.Equal(t, "payee", inv.Status)
}
