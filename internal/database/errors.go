// internal/database/errors.go
package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolationCode = "23505"

// IsUniqueViolation reports whether err was caused by a unique constraint.
// The pre-insert probes keep most duplicates out, but two concurrent writes
// can both pass the probe; the constraint is the authority and its violation
// is translated to a Conflict by the services.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}

	// sqlite (tests) reports unique violations by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
