// Copyright (c) 2026 YaMDb. All rights reserved.

package auth

import "context"

// UserRepository defines the persistence contract for accounts.
//
// The account admin package reuses this interface for its richer listing
// and mutation operations; signup and token issuance only need this subset.
type UserRepository interface {
	/*
		Create persists a brand new account.

		Parameters:
		  - context: context.Context
		  - user: *User (Entity to persist; ID is populated on return)

		Returns:
		  - error: Constraint violations mapped to validation errors, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByUsername retrieves an account by its unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Update persists the mutable fields of an existing account.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity with changes)

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Update(context context.Context, user *User) error
}
