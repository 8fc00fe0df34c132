// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package auth implements the passwordless identity system.

It handles the two-step access flow: signup registers (or re-registers) an
account and mails out a confirmation code; the token endpoint exchanges the
username and code for a signed JWT.

Architecture:

  - Service: Orchestrates business logic (Signup, IssueToken).
  - Repository: Abstracted interface for PostgreSQL account storage.
  - Mail: Confirmation codes are delivered via the platform mail gateway.
  - Security: HS256-signed JWTs carrying role and privilege flags.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/constants"
	"github.com/sdvkam/yamdb-final/internal/platform/mail"
	"github.com/sdvkam/yamdb-final/internal/platform/sec"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	//
	// # Parameters
	//   - username: The unique username of the account.
	//   - role: The assignable role stored on the account.
	//   - staff, superuser: Privilege flags baked into the claims.
	//   - timeToLive: The duration before the token expires.
	GenerateAccessToken(username, role string, staff, superuser bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token issuance use cases.
type Service struct {
	userRepository UserRepository
	mailSender     mail.Sender
	tokenProvider  TokenProvider
	logger         *slog.Logger

	// generateCode is swappable in tests; defaults to the crypto/rand generator.
	generateCode func() (string, error)
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sender mail.Sender, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		mailSender:     sender,
		tokenProvider:  tokenProv,
		logger:         logger,
		generateCode:   sec.GenerateConfirmationCode,
	}
}

// # Signup Flow

// SignupInput holds the data required to register or re-register an account.
type SignupInput struct {
	Email    string
	Username string
}

/*
Signup registers a new account or re-triggers code delivery for an existing one.

Description: Validates input, creates the account on first signup (or reuses
the existing row keyed by username), ensures a confirmation code exists, and
mails it out. The code is never rotated, so repeated signups are an
idempotent resend.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The persisted account
  - error: Validation failures, or MailDelivery when the gateway fails.
    The account row is kept even when mail delivery fails, so the caller
    can simply retry.
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	// Reuse the account when the username is already registered.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil:
		// A registered username is bound to its email for life.
		if user.Email != input.Email {
			return nil, validate.RequiredError(FieldUsername,
				"This username is already registered with a different email")
		}
	case apperr.IsNotFound(err):
		user = &User{
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}
		if err := service.userRepository.Create(context, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	// Generate the code on first signup only; later signups resend the same value.
	if user.ConfirmationCode == "" {
		code, err := service.generateCode()
		if err != nil {
			return nil, fmt.Errorf("auth_service_generate_code_failed: %w", err)
		}
		user.ConfirmationCode = code
		if err := service.userRepository.Update(context, user); err != nil {
			return nil, err
		}
	}

	if err := service.mailSender.SendConfirmationCode(context, user.Email, user.Username, user.ConfirmationCode); err != nil {
		service.logger.Warn("confirmation_code_mail_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
		return nil, apperr.MailDelivery(err)
	}

	service.logger.Info("confirmation_code_sent", slog.String("username", user.Username))
	return user, nil
}

// validateSignup enforces the signup field rules.
func validateSignup(input SignupInput) error {
	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, UsernameMaxLength).
		NotEqual(FieldUsername, input.Username, ReservedUsername).
		Custom(FieldUsername, input.Username != "" && !usernameRegex.MatchString(input.Username),
			"May contain only letters, digits, and @/./+/-/_ characters").
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLength).
		Email(FieldEmail, input.Email)
	return v.Err()
}

// # Token Issuance

// TokenInput holds the credentials exchanged for an access token.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

/*
IssueToken exchanges a username and confirmation code for a signed JWT.

Description: Resolves the account, performs the code check, and signs an
access token carrying the role and privilege flags. Exchanging the same code
repeatedly is allowed; each call issues a fresh token.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - string: Signed access token
  - error: Validation failure (400), unknown username (404), or wrong code (400)
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (string, error) {

	// A missing username is a malformed request, not an unknown account.
	v := &validate.Validator{}
	if err := v.Required(FieldUsername, input.Username).Err(); err != nil {
		return "", err
	}

	// An unknown username surfaces as 404 so clients can distinguish
	// "never signed up" from "wrong code".
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFound("User")
		}
		return "", err
	}

	if user.ConfirmationCode == "" || input.ConfirmationCode != user.ConfirmationCode {
		return "", validate.RequiredError(FieldConfirmationCode, "Invalid confirmation code")
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.Username,
		string(user.Role),
		user.IsStaff,
		user.IsSuperuser,
		constants.AccessTokenTTL,
	)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.Info("access_token_issued", slog.String("username", user.Username))
	return token, nil
}
