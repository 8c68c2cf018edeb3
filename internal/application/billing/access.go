package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/retry"
)

// isTransient solo los errores de almacenamiento se reintentan; los de dominio nunca.
func isTransient(err error) bool {
	return errors.Is(err, domain.ErrStorage)
}

// withRetry reintenta fn ante errores transitorios. Si ctx se cancela entre
// intentos el resultado sigue siendo ErrStorage.
func withRetry(ctx context.Context, p retry.Policy, fn func() error) error {
	err := retry.Do(ctx, p, isTransient, fn)
	if err == nil || errors.Is(err, domain.ErrStorage) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return err
}

// checkID un id que no es UUID no puede existir en la base.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: id %q", domain.ErrNotFound, id)
	}
	return nil
}

func requireSession(s entity.Session) error {
	if !s.Valid() {
		return domain.ErrUnauthorized
	}
	return nil
}

func requireAdmin(s entity.Session) error {
	if err := requireSession(s); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return fmt.Errorf("%w: se requiere rol admin", domain.ErrForbidden)
	}
	return nil
}

// canAccess el dueño del documento o un admin.
func canAccess(s entity.Session, inv *entity.Invoice) error {
	if s.IsAdmin() || inv.OwnedBy(s) {
		return nil
	}
	return fmt.Errorf("%w: el documento pertenece a otro usuario", domain.ErrForbidden)
}

// loadAuthorized obtiene el documento y verifica el acceso de la sesión.
func loadAuthorized(ctx context.Context, repo repository.InvoiceRepository, s entity.Session, id string) (*entity.Invoice, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := canAccess(s, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
