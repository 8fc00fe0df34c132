// Copyright (c) 2026 YaMDb. All rights reserved.

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
)

func TestValidatorPassing(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("username", "alice").
		MaxLen("username", "alice", 150).
		Email("email", "alice@example.com").
		Slug("slug", "science-fiction").
		Range("score", 7, 1, 10).
		OneOf("role", "moderator", "user", "moderator", "admin").
		Err()

	assert.NoError(t, err)
}

func TestValidatorCollectsMultipleErrors(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("name", "  ").
		Email("email", "not-an-email").
		Range("score", 11, 1, 10).
		Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, appError.Details, 3)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "score"}, fields)
}

func TestValidatorSlug(t *testing.T) {
	valid := []string{"fantasy", "science-fiction", "top-100"}
	invalid := []string{"", "Science Fiction", "UPPER", "-leading", "trailing-", "double--hyphen", "under_score"}

	for _, value := range valid {
		v := &Validator{}
		assert.NoError(t, v.Slug("slug", value).Err(), "expected %q to be valid", value)
	}
	for _, value := range invalid {
		v := &Validator{}
		assert.Error(t, v.Slug("slug", value).Err(), "expected %q to be invalid", value)
	}
}

func TestValidatorNotEqual(t *testing.T) {
	v := &Validator{}
	assert.Error(t, v.NotEqual("username", "me", "me").Err())

	v = &Validator{}
	assert.NoError(t, v.NotEqual("username", "melissa", "me").Err())
}

func TestValidatorMinMaxLen(t *testing.T) {
	v := &Validator{}
	assert.Error(t, v.MinLen("code", "abc", 10).Err())

	v = &Validator{}
	assert.Error(t, v.MaxLen("name", "this name is far too long", 10).Err())

	// Length rules count Unicode characters, not bytes.
	v = &Validator{}
	assert.NoError(t, v.MaxLen("name", "пятьдесят", 9).Err())
}

func TestValidatorCustom(t *testing.T) {
	v := &Validator{}
	err := v.Custom("year", true, "Must not be in the future").Err()

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, "year", appError.Details[0].Field)
	assert.Equal(t, "Must not be in the future", appError.Details[0].Message)
}
