// Package postgres implements the store interfaces over PostgreSQL.
package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/calloway/quill-api/internal/validation"
)

// uniqueViolationCode is the PostgreSQL unique violation error code.
const uniqueViolationCode = "23505"

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation. Used to detect duplicate emails, titles, and
// category names that raced past the pipeline's pre-checks.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}
	return false
}

// orderClause maps a validated window onto a SQL ORDER BY clause.
// titleColumn is the column the "title" ordering refers to for the entity.
// The window's values are already validated against closed sets, and the
// switches below only ever emit whitelisted SQL.
func orderClause(w validation.Window, titleColumn, dateColumn string) string {
	column := dateColumn
	if w.OrderBy == validation.OrderByTitle {
		column = titleColumn
	}

	return column + " " + orderDirection(w)
}

// orderDirection maps the window's order onto a whitelisted SQL direction.
func orderDirection(w validation.Window) string {
	if w.Order == validation.OrderDesc {
		return "DESC"
	}
	return "ASC"
}

// nowUTC is the single clock used for store-assigned timestamps.
func nowUTC() time.Time {
	return time.Now().UTC()
}
