// Copyright (c) 2026 YaMDb. All rights reserved.

package review

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
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

// reviewColumns joins reviews to users so every read carries the author's
// username rather than the internal user ID.
const reviewColumns = `r.id, r.title_id, u.username, r.text, r.score, r.pub_date`

/*
Create inserts a review, resolving the author's username to a user row.

Description: The title is checked first so a missing title surfaces as a
404 rather than a foreign-key violation. A second review by the same
author for the same title trips the unique constraint and comes back as
a field-level validation error.
*/
func (repository *PostgresRepository) Create(context context.Context, review *Review) error {
	if err := repository.ensureTitleExists(context, review.TitleID); err != nil {
		return err
	}

	const query = `
		INSERT INTO reviews (title_id, author_id, text, score)
		SELECT $1, u.id, $3, $4
		FROM users u
		WHERE u.username = $2
		RETURNING id, pub_date`

	err := repository.pool.QueryRow(context, query,
		review.TitleID, review.Author, review.Text, review.Score,
	).Scan(&review.ID, &review.PubDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "title",
				Message: "You have already reviewed this title",
			})
		}
		return dberr.Wrap(err, "insert_review")
	}

	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID int64) (*Review, error) {
	const query = `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = $1 AND r.title_id = $2`

	review := &Review{}
	err := repository.pool.QueryRow(context, query, reviewID, titleID).Scan(
		&review.ID,
		&review.TitleID,
		&review.Author,
		&review.Text,
		&review.Score,
		&review.PubDate,
	)
	if err != nil {
		if apperr.IsNotFound(dberr.Wrap(err, "get_review")) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}

	return review, nil
}

func (repository *PostgresRepository) ListByTitle(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := repository.ensureTitleExists(context, titleID); err != nil {
		return nil, 0, err
	}

	const countQuery = `SELECT COUNT(*) FROM reviews WHERE title_id = $1`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	const pageQuery = `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, pageQuery, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0, limit)
	for rows.Next() {
		review := &Review{}
		err := rows.Scan(
			&review.ID,
			&review.TitleID,
			&review.Author,
			&review.Text,
			&review.Score,
			&review.PubDate,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, review)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, review *Review) error {
	const query = `
		UPDATE reviews
		SET text = $3, score = $4
		WHERE id = $1 AND title_id = $2`

	tag, err := repository.pool.Exec(context, query, review.ID, review.TitleID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID int64) error {
	const query = `DELETE FROM reviews WHERE id = $1 AND title_id = $2`

	tag, err := repository.pool.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

// ensureTitleExists resolves a missing parent title as a 404.
func (repository *PostgresRepository) ensureTitleExists(context context.Context, titleID int64) error {
	const query = `SELECT EXISTS (SELECT 1 FROM titles WHERE id = $1)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_title_exists")
	}
	if !exists {
		return apperr.NotFound("Title")
	}

	return nil
}
