package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

const draftColumns = `id, user_id, type, client_name, client_phone, client_email, objet, montant, items, created_at, updated_at`

// DraftRepo implementación de DraftRepository sobre SQLite.
type DraftRepo struct {
	db *sql.DB
}

// NewDraftRepository construye el repositorio sobre una conexión abierta con Open.
func NewDraftRepository(db *sql.DB) *DraftRepo {
	return &DraftRepo{db: db}
}

// Save inserta o reemplaza el borrador completo.
func (r *DraftRepo) Save(ctx context.Context, d *entity.Draft) error {
	items := d.Items
	if items == nil {
		items = []entity.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serializar items: %w", err)
	}
	query := `
		INSERT INTO drafts (` + draftColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			client_name = excluded.client_name,
			client_phone = excluded.client_phone,
			client_email = excluded.client_email,
			objet = excluded.objet,
			montant = excluded.montant,
			items = excluded.items,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.UserID, string(d.Type), d.ClientName, d.ClientPhone, d.ClientEmail, d.Object,
		d.Amount.String(), string(raw),
		d.CreatedAt.UTC().Format(time.RFC3339Nano), d.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: save draft: %w", domain.ErrStorage, err)
	}
	return nil
}

// GetByID obtiene un borrador; (nil, nil) si no existe.
func (r *DraftRepo) GetByID(ctx context.Context, id string) (*entity.Draft, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+draftColumns+` FROM drafts WHERE id = ?`, id)
	d, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get draft: %w", domain.ErrStorage, err)
	}
	return d, nil
}

// ListByUser borradores del usuario, el último modificado primero.
func (r *DraftRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Draft, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list drafts: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var list []*entity.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan draft: %w", domain.ErrStorage, err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list drafts: %w", domain.ErrStorage, err)
	}
	return list, nil
}

// Delete elimina el borrador (idempotente).
func (r *DraftRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete draft: %w", domain.ErrStorage, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(s rowScanner) (*entity.Draft, error) {
	var (
		d                    entity.Draft
		typ, amount, raw     string
		createdAt, updatedAt string
	)
	err := s.Scan(&d.ID, &d.UserID, &typ, &d.ClientName, &d.ClientPhone, &d.ClientEmail, &d.Object,
		&amount, &raw, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	d.Type = entity.DocumentType(typ)
	if d.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("montant de %s: %w", d.ID, err)
	}
	if err := json.Unmarshal([]byte(raw), &d.Items); err != nil {
		return nil, fmt.Errorf("items de %s: %w", d.ID, err)
	}
	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("created_at de %s: %w", d.ID, err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("updated_at de %s: %w", d.ID, err)
	}
	return &d, nil
}
