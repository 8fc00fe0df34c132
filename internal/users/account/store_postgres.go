// Copyright (c) 2026 YaMDb. All rights reserved.

package account

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/dberr"
	"github.com/sdvkam/yamdb-final/internal/users/auth"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
List retrieves a page of accounts ordered by username.

Description: The search term performs a case-insensitive substring match on
the username. A COUNT query runs alongside the page query to provide total
counts for pagination metadata.

Parameters:
  - context: context.Context
  - search: string
  - params: pagination.Params

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching count
  - error: Storage failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, search string, params pagination.Params) ([]*auth.User, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')`

	const pageQuery = `
		SELECT id, username, email, first_name, last_name, bio, role, confirmation_code, is_staff, is_superuser, created_at, updated_at
		FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
		ORDER BY username ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	rows, err := repository.pool.Query(context, pageQuery, search, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*auth.User, 0, params.Limit)
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
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
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, nil
}

/*
Delete permanently removes an account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound when no row was deleted, or storage failures
*/
func (repository *PostgresAccountRepository) Delete(context context.Context, username string) error {
	const query = `DELETE FROM users WHERE username = $1`

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
