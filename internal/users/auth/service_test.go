// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/sec"
)

// # Test Doubles

type fakeUserRepository struct {
	users  map[string]*User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User), nextID: 1}
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	if _, exists := repo.users[user.Username]; exists {
		return apperr.ValidationError("A record with these unique values already exists")
	}
	user.ID = repo.nextID
	repo.nextID++
	stored := *user
	repo.users[user.Username] = &stored
	return nil
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	user, exists := repo.users[username]
	if !exists {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *User) error {
	for username, stored := range repo.users {
		if stored.ID == user.ID {
			updated := *user
			repo.users[username] = &updated
			return nil
		}
	}
	return apperr.NotFound("User")
}

type fakeMailSender struct {
	fail bool
	sent []string // "<to>:<code>" per delivery
}

func (sender *fakeMailSender) SendConfirmationCode(_ context.Context, to, _, code string) error {
	if sender.fail {
		return errors.New("smtp connection refused")
	}
	sender.sent = append(sender.sent, to+":"+code)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(username, role string, staff, superuser bool, _ time.Duration) (string, error) {
	return fmt.Sprintf("jwt:%s:%s:%t:%t", username, role, staff, superuser), nil
}

func newTestService(repo *fakeUserRepository, sender *fakeMailSender) *Service {
	service := NewService(repo, sender, fakeTokenProvider{}, slog.Default())
	codeCounter := 0
	service.generateCode = func() (string, error) {
		codeCounter++
		return fmt.Sprintf("CODE%06d", codeCounter), nil
	}
	return service
}

// # Signup

func TestSignupCreatesUser(t *testing.T) {
	repo := newFakeUserRepository()
	sender := &fakeMailSender{}
	service := newTestService(repo, sender)

	user, err := service.Signup(context.Background(), SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ConfirmationCode)
	assert.Equal(t, []string{"alice@example.com:" + user.ConfirmationCode}, sender.sent)
}

func TestSignupRejectsReservedUsername(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailSender{})

	_, err := service.Signup(context.Background(), SignupInput{
		Email:    "me@example.com",
		Username: "me",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailSender{})

	testCases := []struct {
		name  string
		input SignupInput
	}{
		{"empty username", SignupInput{Email: "a@example.com"}},
		{"empty email", SignupInput{Username: "alice"}},
		{"invalid email", SignupInput{Email: "not-an-email", Username: "alice"}},
		{"forbidden characters", SignupInput{Email: "a@example.com", Username: "al ice!"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), testCase.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestSignupIsIdempotentResend(t *testing.T) {
	repo := newFakeUserRepository()
	sender := &fakeMailSender{}
	service := newTestService(repo, sender)
	input := SignupInput{Email: "alice@example.com", Username: "alice"}

	first, err := service.Signup(context.Background(), input)
	require.NoError(t, err)

	second, err := service.Signup(context.Background(), input)
	require.NoError(t, err)

	// Same row, same code; one account, two deliveries.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ConfirmationCode, second.ConfirmationCode)
	assert.Len(t, repo.users, 1)
	assert.Len(t, sender.sent, 2)
}

func TestSignupRejectsUsernameWithDifferentEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailSender{})

	_, err := service.Signup(context.Background(), SignupInput{Email: "alice@example.com", Username: "alice"})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), SignupInput{Email: "other@example.com", Username: "alice"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestSignupKeepsUserWhenMailFails(t *testing.T) {
	repo := newFakeUserRepository()
	sender := &fakeMailSender{fail: true}
	service := newTestService(repo, sender)

	_, err := service.Signup(context.Background(), SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	assert.Equal(t, "MAIL_DELIVERY_FAILED", appError.Code)

	// The account and its code survive the failed delivery, so a retry
	// with a working gateway resends the original code.
	stored, findErr := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, findErr)
	assert.NotEmpty(t, stored.ConfirmationCode)

	sender.fail = false
	retried, err := service.Signup(context.Background(), SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, stored.ConfirmationCode, retried.ConfirmationCode)
}

// # Token Issuance

func registerUser(t *testing.T, service *Service, email, username string) *User {
	t.Helper()
	user, err := service.Signup(context.Background(), SignupInput{Email: email, Username: username})
	require.NoError(t, err)
	return user
}

func TestIssueTokenSuccess(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailSender{})
	user := registerUser(t, service, "alice@example.com", "alice")

	token, err := service.IssueToken(context.Background(), TokenInput{
		Username:         "alice",
		ConfirmationCode: user.ConfirmationCode,
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt:alice:user:false:false", token)
}

func TestIssueTokenMissingUsername(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailSender{})

	_, err := service.IssueToken(context.Background(), TokenInput{ConfirmationCode: "whatever"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestIssueTokenUnknownUser(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeMailSender{})

	_, err := service.IssueToken(context.Background(), TokenInput{
		Username:         "ghost",
		ConfirmationCode: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

func TestIssueTokenWrongCode(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailSender{})
	registerUser(t, service, "alice@example.com", "alice")

	_, err := service.IssueToken(context.Background(), TokenInput{
		Username:         "alice",
		ConfirmationCode: "WRONG00000",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}

func TestIssueTokenRepeatedExchange(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailSender{})
	user := registerUser(t, service, "alice@example.com", "alice")

	// The code survives a successful exchange; it can be used again.
	input := TokenInput{Username: "alice", ConfirmationCode: user.ConfirmationCode}
	_, err := service.IssueToken(context.Background(), input)
	require.NoError(t, err)
	_, err = service.IssueToken(context.Background(), input)
	require.NoError(t, err)
}

func TestIssueTokenCarriesPrivilegeFlags(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestService(repo, &fakeMailSender{})
	user := registerUser(t, service, "root@example.com", "root")

	// Flip flags the way a DBA would, outside the API surface.
	stored := repo.users["root"]
	stored.IsSuperuser = true
	stored.Role = sec.RoleModerator

	token, err := service.IssueToken(context.Background(), TokenInput{
		Username:         "root",
		ConfirmationCode: user.ConfirmationCode,
	})
	require.NoError(t, err)
	assert.Equal(t, "jwt:root:moderator:false:true", token)
}
