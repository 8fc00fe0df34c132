// Copyright (c) 2026 YaMDb. All rights reserved.

package dberr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "select user"))
}

func TestWrapNoRows(t *testing.T) {
	err := Wrap(pgx.ErrNoRows, "select title")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestWrapUniqueViolation(t *testing.T) {
	pgError := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	err := Wrap(pgError, "insert review")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestWrapForeignKeyViolation(t *testing.T) {
	pgError := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	err := Wrap(pgError, "insert comment")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
}

func TestWrapUnknownError(t *testing.T) {
	err := Wrap(errors.New("connection reset"), "select genre")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)
	assert.Equal(t, "INTERNAL_ERROR", appError.Code)
}
