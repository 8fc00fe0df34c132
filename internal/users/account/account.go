// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package account handles user administration and self-service profile management.

Admins manage the full user collection (list, create, update, delete by
username); every authenticated user can read and edit their own profile
through the /users/me alias.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    its core repository; only listing and deletion need extra storage support.
  - Security: Role changes are admin-only; self-service updates preserve the
    caller's role.
*/
package account

import (
	"context"

	"github.com/sdvkam/yamdb-final/internal/users/auth"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// # Repository Contracts

// AccountRepository extends account storage with the administrative
// operations that signup and token issuance never need.
type AccountRepository interface {
	/*
		List retrieves a page of accounts, optionally filtered by a search term
		matched against the username.

		Parameters:
		  - context: context.Context
		  - search: string (empty means no filter)
		  - params: pagination.Params

		Returns:
		  - []*auth.User: The page of accounts, ordered by username
		  - int: Total matching count for pagination metadata
		  - error: Storage failures
	*/
	List(context context.Context, search string, params pagination.Params) ([]*auth.User, int, error)

	/*
		Delete permanently removes an account by username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: apperr.NotFound when no such account exists, or storage failures
	*/
	Delete(context context.Context, username string) error
}
