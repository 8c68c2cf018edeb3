package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/facturation-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isCheckViolation 23514: el saldo violaría montant_paye <= montant_total.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// isUUID las columnas id son UUID; otro texto no llega a la consulta.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// storageErr envuelve un error del driver como domain.ErrStorage conservando la causa.
func storageErr(op string, err error) error {
	if isCheckViolation(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrOutOfRange, op, err)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrAlreadyExists, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, op, err)
}
