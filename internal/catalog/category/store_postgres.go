// Copyright (c) 2026 YaMDb. All rights reserved.

package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	err := repository.pool.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		return dberr.Wrap(err, "create_category")
	}

	return nil
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	const pageQuery = `
		SELECT id, name, slug
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	rows, err := repository.pool.Query(context, pageQuery, search, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0, limit)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	const query = `DELETE FROM categories WHERE slug = $1`

	tag, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
