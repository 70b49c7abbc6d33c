package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"contractpad/internal/domain"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// requireAffected maps an UPDATE/DELETE that touched nothing to ErrNotFound
func requireAffected(tag pgconn.CommandTag, resourceType, id string) error {
	if tag.RowsAffected() == 0 {
		return domain.NotFound(resourceType, id)
	}
	return nil
}
