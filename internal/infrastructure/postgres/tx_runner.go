package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturation-api/internal/application/billing"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
)

var _ billing.LedgerTxRunner = (*TxRunner)(nil)

// ledgerTxOptions READ COMMITTED alcanza: los pagos bloquean la fila con FOR UPDATE.
var ledgerTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// TxRunner ejecuta callbacks del libro de saldos dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLedger ejecuta fn con repos de facturas y pagos atados a la misma tx.
// Los errores de fn se devuelven tal cual (tras el rollback); los de begin/commit como ErrStorage.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	var fnErr error
	err := pgx.BeginTxFunc(ctx, r.pool, ledgerTxOptions, func(tx pgx.Tx) error {
		fnErr = fn(NewInvoiceRepository(tx), NewPaymentRepository(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return storageErr("ledger transaction", err)
	}
	return nil
}
