// Copyright (c) 2026 YaMDb. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Constraint Violations
//
// The system implements no locking of its own: concurrent writes rely on the
// store's unique constraints (username, email, slug, one review per title and
// author). A violated constraint is a client input problem, so SQLSTATE 23505
// and 23503 are translated into 400 validation errors rather than 500s.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations become validation errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.ValidationError("A record with these unique values already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("A referenced record does not exist")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
