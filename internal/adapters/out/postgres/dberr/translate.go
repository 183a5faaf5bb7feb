// Package dberr maps driver errors onto the domain error taxonomy.
package dberr

import (
	"errors"

	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index violation.
const uniqueViolation = "23505"

// Translate turns unique key violations into a ConflictError on resource and
// returns every other error unchanged.
//
// Both the raw pgconn error and gorm's dialect-neutral ErrDuplicatedKey (when the
// connection is opened with TranslateError) are recognized.
func Translate(err error, resource string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == uniqueViolation) {
		return errs.NewConflictErrorWithCause(resource, "already exists", err)
	}

	return err
}
