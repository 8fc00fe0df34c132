// Copyright (c) 2026 YaMDb. All rights reserved.

package account

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/sec"
	"github.com/sdvkam/yamdb-final/internal/users/auth"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// # Test Doubles

type fakeStore struct {
	users  map[string]*auth.User
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*auth.User), nextID: 1}
}

func (store *fakeStore) Create(_ context.Context, user *auth.User) error {
	if _, exists := store.users[user.Username]; exists {
		return apperr.ValidationError("A record with these unique values already exists")
	}
	user.ID = store.nextID
	store.nextID++
	stored := *user
	store.users[user.Username] = &stored
	return nil
}

func (store *fakeStore) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, exists := store.users[username]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

func (store *fakeStore) Update(_ context.Context, user *auth.User) error {
	for username, stored := range store.users {
		if stored.ID == user.ID {
			updated := *user
			store.users[username] = &updated
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (store *fakeStore) List(_ context.Context, search string, params pagination.Params) ([]*auth.User, int, error) {
	matched := make([]*auth.User, 0)
	for _, user := range store.users {
		if search == "" || strings.Contains(user.Username, search) {
			found := *user
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	offset := params.Offset()
	if offset > total {
		return []*auth.User{}, total, nil
	}
	end := offset + params.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (store *fakeStore) Delete(_ context.Context, username string) error {
	if _, exists := store.users[username]; !exists {
		return apperr.NotFound("User")
	}
	delete(store.users, username)
	return nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, slog.Default())
}

func seedUser(t *testing.T, store *fakeStore, username string, role sec.UserRole) *auth.User {
	t.Helper()
	user := &auth.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, store.Create(context.Background(), user))
	return user
}

// # Collection Operations

func TestCreateDefaultsToUserRole(t *testing.T) {
	service := newTestService(newFakeStore())

	user, err := service.Create(context.Background(), CreateInput{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Empty(t, user.ConfirmationCode)
}

func TestCreateWithExplicitRole(t *testing.T) {
	service := newTestService(newFakeStore())

	user, err := service.Create(context.Background(), CreateInput{
		Username: "mira",
		Email:    "mira@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestCreateRejectsInvalidRole(t *testing.T) {
	service := newTestService(newFakeStore())

	_, err := service.Create(context.Background(), CreateInput{
		Username: "bob",
		Email:    "bob@example.com",
		Role:     "superuser",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateRejectsReservedUsername(t *testing.T) {
	service := newTestService(newFakeStore())

	_, err := service.Create(context.Background(), CreateInput{
		Username: "me",
		Email:    "me@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestListSearchAndPagination(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	for _, name := range []string{"alice", "alina", "bob", "carol"} {
		seedUser(t, store, name, sec.RoleUser)
	}

	users, total, err := service.List(context.Background(), "ali", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "alina", users[1].Username)

	page2, total, err := service.List(context.Background(), "", pagination.Params{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page2, 1)
	assert.Equal(t, "carol", page2[0].Username)
}

// # Single-Account Operations

func TestUpdateChangesRole(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedUser(t, store, "alice", sec.RoleUser)

	role := "moderator"
	user, err := service.Update(context.Background(), "alice", UpdateInput{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestUpdateUnknownUser(t *testing.T) {
	service := newTestService(newFakeStore())

	bio := "hello"
	_, err := service.Update(context.Background(), "ghost", UpdateInput{Bio: &bio})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateSelfPreservesRole(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedUser(t, store, "mira", sec.RoleModerator)

	role := "admin"
	bio := "new bio"
	user, err := service.UpdateSelf(context.Background(), "mira", UpdateInput{Role: &role, Bio: &bio})
	require.NoError(t, err)

	// The bio change applies; the role escalation attempt is silently dropped.
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store)
	seedUser(t, store, "alice", sec.RoleUser)

	require.NoError(t, service.Delete(context.Background(), "alice"))
	assert.True(t, apperr.IsNotFound(service.Delete(context.Background(), "alice")))
}
