package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlStateUniqueViolation    = "23505"
	sqlStateExclusionViolation = "23P01"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports whether err is an EXCLUDE constraint violation,
// raised when two occupying appointments overlap for the same barber.
func IsExclusionConflict(err error) bool {
	return sqlState(err) == sqlStateExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return sqlState(err) == sqlStateUniqueViolation
}
