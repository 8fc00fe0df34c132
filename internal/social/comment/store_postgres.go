// Copyright (c) 2026 YaMDb. All rights reserved.

package comment

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

const commentColumns = `cm.id, cm.review_id, cm.title_id, u.username, cm.text, cm.pub_date`

// Create inserts a comment after checking the parent review exists under
// the given title, so a bad nesting path surfaces as a 404 rather than a
// foreign-key violation.
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	if err := repository.ensureReviewExists(context, comment.TitleID, comment.ReviewID); err != nil {
		return err
	}

	const query = `
		INSERT INTO comments (review_id, title_id, author_id, text)
		SELECT $1, $2, u.id, $4
		FROM users u
		WHERE u.username = $3
		RETURNING id, pub_date`

	err := repository.pool.QueryRow(context, query,
		comment.ReviewID, comment.TitleID, comment.Author, comment.Text,
	).Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		return dberr.Wrap(err, "insert_comment")
	}

	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.id = $1 AND cm.review_id = $2 AND cm.title_id = $3`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, commentID, reviewID, titleID).Scan(
		&comment.ID,
		&comment.ReviewID,
		&comment.TitleID,
		&comment.Author,
		&comment.Text,
		&comment.PubDate,
	)
	if err != nil {
		if apperr.IsNotFound(dberr.Wrap(err, "get_comment")) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, dberr.Wrap(err, "get_comment")
	}

	return comment, nil
}

func (repository *PostgresRepository) ListByReview(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if err := repository.ensureReviewExists(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	const countQuery = `SELECT COUNT(*) FROM comments WHERE review_id = $1 AND title_id = $2`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, reviewID, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	const pageQuery = `
		SELECT ` + commentColumns + `
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.review_id = $1 AND cm.title_id = $2
		ORDER BY cm.pub_date ASC, cm.id ASC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(context, pageQuery, reviewID, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.ReviewID,
			&comment.TitleID,
			&comment.Author,
			&comment.Text,
			&comment.PubDate,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `
		UPDATE comments
		SET text = $4
		WHERE id = $1 AND review_id = $2 AND title_id = $3`

	tag, err := repository.pool.Exec(context, query, comment.ID, comment.ReviewID, comment.TitleID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "update_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, titleID, reviewID, commentID int64) error {
	const query = `DELETE FROM comments WHERE id = $1 AND review_id = $2 AND title_id = $3`

	tag, err := repository.pool.Exec(context, query, commentID, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// ensureReviewExists resolves a missing or mis-nested parent review as a 404.
func (repository *PostgresRepository) ensureReviewExists(context context.Context, titleID, reviewID int64) error {
	const query = `SELECT EXISTS (SELECT 1 FROM reviews WHERE id = $1 AND title_id = $2)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_review_exists")
	}
	if !exists {
		return apperr.NotFound("Review")
	}

	return nil
}
