package shared

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)

// PgErrorCode reports whether err carries a Postgres error with the given
// SQLSTATE code.
func PgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
