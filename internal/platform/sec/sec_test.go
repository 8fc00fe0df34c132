// Copyright (c) 2026 YaMDb. All rights reserved.

package sec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfirmationCode(t *testing.T) {
	code, err := GenerateConfirmationCode()
	require.NoError(t, err)
	assert.Len(t, code, ConfirmationCodeLength)

	for _, char := range code {
		assert.Contains(t, confirmationCodeAlphabet, string(char))
	}
}

func TestGenerateConfirmationCodeIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateConfirmationCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "generated a duplicate code")
		seen[code] = true
	}
}

func TestTokenServiceRoundTrip(t *testing.T) {
	service, err := NewTokenService("test-secret", "yamdb.api")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("alice", string(RoleModerator), false, true, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, string(RoleModerator), claims.Role)
	assert.False(t, claims.Staff)
	assert.True(t, claims.Superuser)
	assert.Equal(t, "yamdb.api", claims.Issuer)
}

func TestTokenServiceRejectsEmptySecret(t *testing.T) {
	_, err := NewTokenService("", "yamdb.api")
	require.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	service, err := NewTokenService("test-secret", "yamdb.api")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("alice", string(RoleUser), false, false, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuing, err := NewTokenService("secret-one", "yamdb.api")
	require.NoError(t, err)
	verifying, err := NewTokenService("secret-two", "yamdb.api")
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken("alice", string(RoleUser), false, false, time.Hour)
	require.NoError(t, err)

	_, err = verifying.VerifyToken(token)
	require.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	service, err := NewTokenService("test-secret", "yamdb.api")
	require.NoError(t, err)

	_, err = service.VerifyToken("not.a.jwt")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid token"))
}

func TestUserRoleIsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleModerator.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("superuser").IsValid())
	assert.False(t, UserRole("").IsValid())
}
