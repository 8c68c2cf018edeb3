package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, type, client_name, client_phone, client_email, items, objet,
		montant_total, montant_paye, reliquat, status, date, user_id, role, created_at, updated_at`

// InvoiceRepo implementación del puerto InvoiceRepository sobre la tabla factures.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador (pool o tx).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la factura con sus líneas serializadas en JSONB.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	items := inv.Items
	if items == nil {
		items = []entity.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serializar items: %w", err)
	}
	query := `
		INSERT INTO factures (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, string(inv.Type), inv.ClientName, inv.ClientPhone, inv.ClientEmail, raw, inv.Object,
		inv.TotalAmount, inv.AmountPaid, inv.Remainder, string(inv.Status), inv.Date,
		inv.UserID, inv.Role, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert facture", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM factures WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene efecto dentro de una tx.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM factures WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query, id string) (*entity.Invoice, error) {
	if !isUUID(id) {
		return nil, nil
	}
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get facture", err)
	}
	return inv, nil
}

// UpdateBalance persiste el saldo ya validado por el dominio.
func (r *InvoiceRepo) UpdateBalance(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE factures SET montant_paye = $2, reliquat = $3, status = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, inv.ID, inv.AmountPaid, inv.Remainder, string(inv.Status), inv.UpdatedAt)
	if err != nil {
		return storageErr("update balance", err)
	}
	if tag.RowsAffected() == 0 {
		return storageErr("update balance", fmt.Errorf("factura %s no encontrada", inv.ID))
	}
	return nil
}

// List consulta con filtros opcionales, más reciente primero.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.UserID != "" {
		conds = append(conds, "user_id = "+arg(f.UserID))
	}
	if f.Type != "" {
		conds = append(conds, "type = "+arg(string(f.Type)))
	}
	if f.Status != "" {
		conds = append(conds, "status = "+arg(string(f.Status)))
	}
	if f.OnlyOutstanding {
		conds = append(conds, "reliquat > 0")
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + invoiceColumns + ` FROM factures`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY date DESC, created_at DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(f.Limit))
	}
	if f.Offset > 0 {
		sb.WriteString(" OFFSET " + arg(f.Offset))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, storageErr("list factures", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, storageErr("scan facture", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list factures", err)
	}
	return list, nil
}

// Delete elimina la factura (los pagos caen por ON DELETE CASCADE).
func (r *InvoiceRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM factures WHERE id = $1`, id)
	if err != nil {
		return false, storageErr("delete facture", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAll vacía la colección.
func (r *InvoiceRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM factures`)
	if err != nil {
		return 0, storageErr("delete all factures", err)
	}
	return tag.RowsAffected(), nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv         entity.Invoice
		typ, status string
		raw         []byte
	)
	err := row.Scan(
		&inv.ID, &typ, &inv.ClientName, &inv.ClientPhone, &inv.ClientEmail, &raw, &inv.Object,
		&inv.TotalAmount, &inv.AmountPaid, &inv.Remainder, &status, &inv.Date,
		&inv.UserID, &inv.Role, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Type = entity.DocumentType(typ)
	inv.Status = entity.PaymentStatus(status)
	inv.Items = []entity.LineItem{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &inv.Items); err != nil {
			return nil, fmt.Errorf("items de %s: %w", inv.ID, err)
		}
	}
	return &inv, nil
}
