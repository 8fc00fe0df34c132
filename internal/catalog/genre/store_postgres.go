// Copyright (c) 2026 YaMDb. All rights reserved.

package genre

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

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	const query = `
		INSERT INTO genres (name, slug)
		VALUES ($1, $2)
		RETURNING id`

	err := repository.pool.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID)
	if err != nil {
		return dberr.Wrap(err, "create_genre")
	}

	return nil
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	const countQuery = `
		SELECT COUNT(*) FROM genres
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	const pageQuery = `
		SELECT id, name, slug
		FROM genres
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	rows, err := repository.pool.Query(context, pageQuery, search, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0, limit)
	for rows.Next() {
		genre := &Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, genre)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	const query = `DELETE FROM genres WHERE slug = $1`

	tag, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre")
	}

	return nil
}
