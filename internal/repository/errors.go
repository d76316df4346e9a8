package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/storefront/cart/internal/domain"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// mapPgError translates driver-level failures into the domain taxonomy so
// that callers never depend on pgconn.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return domain.ErrDuplicateItem
	case pgSerializationFailure, pgDeadlockDetected:
		return domain.ErrConflict
	}

	return err
}
