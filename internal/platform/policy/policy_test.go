// Copyright (c) 2026 YaMDb. All rights reserved.

package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/sec"
)

type ownedStub struct{ owner string }

func (stub ownedStub) OwnerUsername() string { return stub.owner }

func TestPrincipalIsAdmin(t *testing.T) {
	testCases := []struct {
		name      string
		principal *Principal
		expected  bool
	}{
		{"nil principal", nil, false},
		{"plain user", &Principal{Role: sec.RoleUser}, false},
		{"moderator", &Principal{Role: sec.RoleModerator}, false},
		{"admin role", &Principal{Role: sec.RoleAdmin}, true},
		{"staff with user role", &Principal{Role: sec.RoleUser, Staff: true}, true},
		{"superuser with user role", &Principal{Role: sec.RoleUser, Superuser: true}, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.principal.IsAdmin())
		})
	}
}

func TestPrincipalIsModerator(t *testing.T) {
	assert.False(t, (*Principal)(nil).IsModerator())
	assert.False(t, (&Principal{Role: sec.RoleUser}).IsModerator())
	assert.True(t, (&Principal{Role: sec.RoleModerator}).IsModerator())
	assert.True(t, (&Principal{Role: sec.RoleUser, Superuser: true}).IsModerator())

	// The admin role alone does not imply moderation power.
	assert.False(t, (&Principal{Role: sec.RoleAdmin}).IsModerator())
}

func TestIsAuthor(t *testing.T) {
	author := &Principal{Username: "alice", Role: sec.RoleUser}
	stranger := &Principal{Username: "bob", Role: sec.RoleUser}
	resource := ownedStub{owner: "alice"}

	allow := IsAuthor()
	assert.True(t, allow(author, http.MethodPatch, resource))
	assert.False(t, allow(stranger, http.MethodPatch, resource))
	assert.False(t, allow(nil, http.MethodPatch, resource))
	assert.False(t, allow(author, http.MethodPost, nil))
}

func TestIsAdminOrReadOnly(t *testing.T) {
	allow := IsAdminOrReadOnly()

	assert.True(t, allow(nil, http.MethodGet, nil))
	assert.True(t, allow(&Principal{Role: sec.RoleUser}, http.MethodGet, nil))
	assert.False(t, allow(nil, http.MethodPost, nil))
	assert.False(t, allow(&Principal{Role: sec.RoleUser}, http.MethodDelete, nil))
	assert.True(t, allow(&Principal{Role: sec.RoleAdmin}, http.MethodPost, nil))
	assert.True(t, allow(&Principal{Staff: true, Role: sec.RoleUser}, http.MethodDelete, nil))
}

func TestAnyOfGrantsOnFirstMatch(t *testing.T) {
	moderator := &Principal{Username: "mira", Role: sec.RoleModerator}
	resource := ownedStub{owner: "alice"}

	check := AnyOf(IsAuthor(), IsModerator(), IsAdmin())
	require.NoError(t, check(moderator, http.MethodDelete, resource))
}

func TestAnyOfDeniesWithUniformMessage(t *testing.T) {
	stranger := &Principal{Username: "bob", Role: sec.RoleUser}
	resource := ownedStub{owner: "alice"}

	check := AnyOf(IsAuthor(), IsModerator(), IsAdmin())
	err := check(stranger, http.MethodDelete, resource)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 403, appError.HTTPStatus)
	assert.Equal(t, "You do not have permission to perform this action", appError.Message)
}

func TestFromClaims(t *testing.T) {
	assert.Nil(t, FromClaims(nil))

	principal := FromClaims(&sec.AuthClaims{
		Username:  "carol",
		Role:      string(sec.RoleModerator),
		Superuser: true,
	})
	require.NotNil(t, principal)
	assert.Equal(t, "carol", principal.Username)
	assert.True(t, principal.IsModerator())
	assert.True(t, principal.IsAdmin())
}
