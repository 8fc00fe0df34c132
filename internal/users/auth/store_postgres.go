// Copyright (c) 2026 YaMDb. All rights reserved.

// # Storage Layer (PostgreSQL)
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces using the [pgxpool.Pool] connection
// manager, and map storage-specific errors to [apperr.AppError] types via
// dberr so implementation details never leak to clients.

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdvkam/yamdb-final/internal/platform/dberr"
)

// userColumns is the canonical SELECT list shared by account lookups.
const userColumns = `id, username, email, first_name, last_name, bio, role, confirmation_code, is_staff, is_superuser, created_at, updated_at`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new account record into the users table.

Description: Inserts the account and hydrates the generated ID and timestamps
back onto the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Unique violations as validation errors, or storage failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (
			username, email, first_name, last_name, bio, role, confirmation_code, is_staff, is_superuser, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationCode,
		user.IsStaff,
		user.IsSuperuser,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

/*
FindByUsername retrieves an account by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationCode,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}

	return user, nil
}

/*
Update persists the mutable fields of an existing account.

Description: Synchronizes the in-memory state with the database, refreshing
the updated_at timestamp. Staff and superuser flags are deliberately not
updatable through this path.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Constraint violations or storage failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, bio = $5, role = $6, confirmation_code = $7, updated_at = $8
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationCode,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "update_user")
	}

	return nil
}
