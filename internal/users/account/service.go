// Copyright (c) 2026 YaMDb. All rights reserved.

package account

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/sdvkam/yamdb-final/internal/platform/sec"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/internal/users/auth"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// usernameRegex mirrors the signup rule so admin-created accounts obey the
// same identity format.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// # Service Layer

// Service orchestrates business logic for user administration and
// self-service profile updates.
type Service struct {
	userRepository    auth.UserRepository
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(userRepo auth.UserRepository, accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository:    userRepo,
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Collection Operations

/*
List retrieves a page of accounts for administrators.

Parameters:
  - context: context.Context
  - search: string (username substring filter, may be empty)
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching count
  - error: Storage failures
*/
func (service *Service) List(context context.Context, search string, params pagination.Params) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, search, params)
}

// CreateInput holds the fields an administrator supplies for a new account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
Create registers a new account on behalf of an administrator.

Description: Unlike signup, no confirmation code is generated here; the user
obtains one by going through the signup endpoint with the same identity.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: Created account
  - error: Validation failures or unique constraint violations
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	v := &validate.Validator{}
	v.Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.UsernameMaxLength).
		NotEqual(auth.FieldUsername, input.Username, auth.ReservedUsername).
		Custom(auth.FieldUsername, input.Username != "" && !usernameRegex.MatchString(input.Username),
			"May contain only letters, digits, and @/./+/-/_ characters").
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLength).
		Email(auth.FieldEmail, input.Email).
		OneOf("role", input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if err := v.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created_by_admin", slog.String("username", user.Username))
	return user, nil
}

// # Single-Account Operations

/*
Get retrieves an account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated account
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.userRepository.FindByUsername(context, username)
}

// UpdateInput defines the mutable subset of account fields.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
Update applies a partial set of changes to an account.

Description: Fetches the existing state, overlays the provided fields, and
persists the result. Role changes are validated against the assignable set.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Not found, validation, or storage failures
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if input.Email != nil {
		v.Required(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.EmailMaxLength).
			Email(auth.FieldEmail, *input.Email)
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("username", username))
	return user, nil
}

/*
UpdateSelf applies profile changes for the authenticated user.

Description: Identical to Update except the role field is silently ignored.
A user cannot promote or demote themselves regardless of what the request
body carries.

Parameters:
  - context: context.Context
  - username: string (taken from verified claims, never from the path)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Not found, validation, or storage failures
*/
func (service *Service) UpdateSelf(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	input.Role = nil
	return service.Update(context, username, input)
}

/*
Delete permanently removes an account.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.accountRepository.Delete(context, username); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("username", username))
	return nil
}
