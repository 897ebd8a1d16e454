package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Sanjeev-Guntha/synapse/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidTextRepresentationCode is raised for malformed JSON input
	invalidTextRepresentationCode = "22P02"

	// undefinedTableCode is raised when the schema has not been migrated
	undefinedTableCode = "42P01"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
		case invalidTextRepresentationCode:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		case undefinedTableCode:
			return fmt.Errorf("%w: schema not migrated: %v", store.ErrUnavailable, err)
		}
	}

	return err
}
