package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/retry"
)

// memStore base en memoria. El runner toma mu durante toda la transacción,
// lo que equivale al bloqueo de fila de PostgreSQL para estos tests.
type memStore struct {
	mu       sync.Mutex
	invoices map[string]entity.Invoice
	payments map[string][]entity.PaymentEntry

	failPaymentCreate int // próximos N inserts de pago fallan con ErrStorage
	failBegin         int // próximos N begin fallan con ErrStorage
	lostCommit        int // próximos N commits se aplican pero devuelven ErrStorage
	ledgerRuns        int
}

func newMemStore() *memStore {
	return &memStore{
		invoices: map[string]entity.Invoice{},
		payments: map[string][]entity.PaymentEntry{},
	}
}

type snapshot struct {
	invoices map[string]entity.Invoice
	payments map[string][]entity.PaymentEntry
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		invoices: make(map[string]entity.Invoice, len(s.invoices)),
		payments: make(map[string][]entity.PaymentEntry, len(s.payments)),
	}
	for k, v := range s.invoices {
		snap.invoices[k] = v
	}
	for k, v := range s.payments {
		snap.payments[k] = append([]entity.PaymentEntry(nil), v...)
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.invoices = snap.invoices
	s.payments = snap.payments
}

func (s *memStore) put(inv *entity.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID] = *inv
}

func (s *memStore) get(id string) entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoices[id]
}

func (s *memStore) paymentsOf(id string) []entity.PaymentEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.PaymentEntry(nil), s.payments[id]...)
}

// ── repos ─────────────────────────────────────────────────────────────────────

type memInvoiceRepo struct {
	st   *memStore
	inTx bool
}

func (r *memInvoiceRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.st.mu.Lock()
	return r.st.mu.Unlock
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	defer r.lock()()
	if _, ok := r.st.invoices[inv.ID]; ok {
		return fmt.Errorf("%w: factures_pkey %s", domain.ErrAlreadyExists, inv.ID)
	}
	r.st.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	defer r.lock()()
	inv, ok := r.st.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *memInvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *memInvoiceRepo) UpdateBalance(_ context.Context, inv *entity.Invoice) error {
	defer r.lock()()
	cur, ok := r.st.invoices[inv.ID]
	if !ok {
		return domain.ErrStorage
	}
	cur.AmountPaid, cur.Remainder, cur.Status, cur.UpdatedAt = inv.AmountPaid, inv.Remainder, inv.Status, inv.UpdatedAt
	r.st.invoices[inv.ID] = cur
	return nil
}

func (r *memInvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	defer r.lock()()
	var out []*entity.Invoice
	for _, inv := range r.st.invoices {
		if f.UserID != "" && inv.UserID != f.UserID {
			continue
		}
		if f.Type != "" && inv.Type != f.Type {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.OnlyOutstanding && !inv.Remainder.IsPositive() {
			continue
		}
		inv := inv
		out = append(out, &inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id string) (bool, error) {
	defer r.lock()()
	if _, ok := r.st.invoices[id]; !ok {
		return false, nil
	}
	delete(r.st.invoices, id)
	delete(r.st.payments, id)
	return true, nil
}

func (r *memInvoiceRepo) DeleteAll(_ context.Context) (int64, error) {
	defer r.lock()()
	n := int64(len(r.st.invoices))
	r.st.invoices = map[string]entity.Invoice{}
	r.st.payments = map[string][]entity.PaymentEntry{}
	return n, nil
}

type memPaymentRepo struct {
	st   *memStore
	inTx bool
}

func (r *memPaymentRepo) Create(_ context.Context, e *entity.PaymentEntry) error {
	if !r.inTx {
		r.st.mu.Lock()
		defer r.st.mu.Unlock()
	}
	if r.st.failPaymentCreate > 0 {
		r.st.failPaymentCreate--
		return domain.ErrStorage
	}
	r.st.payments[e.InvoiceID] = append(r.st.payments[e.InvoiceID], *e)
	return nil
}

func (r *memPaymentRepo) ListByInvoice(_ context.Context, id string) ([]*entity.PaymentEntry, error) {
	if !r.inTx {
		r.st.mu.Lock()
		defer r.st.mu.Unlock()
	}
	var out []*entity.PaymentEntry
	for _, e := range r.st.payments[id] {
		e := e
		out = append(out, &e)
	}
	return out, nil
}

// memTxRunner serializa transacciones y hace rollback restaurando la foto previa.
type memTxRunner struct {
	st *memStore
}

var _ billing.LedgerTxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) RunLedger(_ context.Context, fn func(repository.InvoiceRepository, repository.PaymentRepository) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.ledgerRuns++
	if r.st.failBegin > 0 {
		r.st.failBegin--
		return domain.ErrStorage
	}
	snap := r.st.snapshot()
	if err := fn(&memInvoiceRepo{st: r.st, inTx: true}, &memPaymentRepo{st: r.st, inTx: true}); err != nil {
		r.st.restore(snap)
		return err
	}
	if r.st.lostCommit > 0 {
		r.st.lostCommit--
		return fmt.Errorf("%w: conexión cerrada tras COMMIT", domain.ErrStorage)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

var (
	alice = entity.Session{UserID: "u-alice", Email: "alice@example.com", Role: entity.RoleUser}
	bob   = entity.Session{UserID: "u-bob", Email: "bob@example.com", Role: entity.RoleUser}
	admin = entity.Session{UserID: "u-admin", Email: "admin@example.com", Role: entity.RoleAdmin}

	fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
)

func testSettings() billing.Settings {
	s := billing.DefaultSettings()
	s.Retry = retry.Policy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
	s.CompanyName = "MABOU-INSTRUMED"
	s.Now = func() time.Time { return fixedNow }
	return s
}

type fixture struct {
	store    *memStore
	invoices *billing.InvoiceUseCase
	payments *billing.PaymentUseCase
}

func newFixture() *fixture {
	st := newMemStore()
	runner := &memTxRunner{st: st}
	invRepo := &memInvoiceRepo{st: st}
	payRepo := &memPaymentRepo{st: st}
	settings := testSettings()
	return &fixture{
		store:    st,
		invoices: billing.NewInvoiceUseCase(runner, invRepo, settings, nil),
		payments: billing.NewPaymentUseCase(runner, invRepo, payRepo, settings, nil),
	}
}
