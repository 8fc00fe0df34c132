// Copyright (c) 2026 YaMDb. All rights reserved.

package title

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sdvkam/yamdb-final/internal/catalog/category"
	"github.com/sdvkam/yamdb-final/internal/catalog/genre"
	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/dberr"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a title and its relations inside a single transaction.

Description: Resolves the category and genre slugs first so unknown slugs
fail as 400s before anything is written.
*/
func (repository *PostgresRepository) Create(context context.Context, title *Title, categorySlug string, genreSlugs []string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	resolvedCategory, err := resolveCategory(context, tx, categorySlug)
	if err != nil {
		return err
	}

	resolvedGenres, err := resolveGenres(context, tx, genreSlugs)
	if err != nil {
		return err
	}

	const insertQuery = `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var categoryID *int64
	if resolvedCategory != nil {
		categoryID = &resolvedCategory.ID
	}

	if err := tx.QueryRow(context, insertQuery, title.Name, title.Year, title.Description, categoryID).Scan(&title.ID); err != nil {
		return dberr.Wrap(err, "insert_title")
	}

	if err := linkGenres(context, tx, title.ID, resolvedGenres); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_create_title")
	}

	title.Category = resolvedCategory
	title.Genres = resolvedGenres
	return nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	const query = `
		SELECT t.id, t.name, t.year, t.description, c.id, c.name, c.slug
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`

	title := &Title{}
	var categoryID *int64
	var categoryName, categorySlug *string

	err := repository.pool.QueryRow(context, query, id).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&categoryID,
		&categoryName,
		&categorySlug,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_title_by_id")
	}

	if categoryID != nil {
		title.Category = &category.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
	}

	genresByTitle, err := repository.loadGenres(context, []int64{title.ID})
	if err != nil {
		return nil, err
	}
	title.Genres = genresByTitle[title.ID]

	return title, nil
}

func (repository *PostgresRepository) GetRating(context context.Context, id int64) (*float64, error) {
	const query = `SELECT AVG(score)::float8 FROM reviews WHERE title_id = $1`

	var rating *float64
	if err := repository.pool.QueryRow(context, query, id).Scan(&rating); err != nil {
		return nil, dberr.Wrap(err, "get_title_rating")
	}

	return rating, nil
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	// All filters are always bound; empty/nil values disable their clause.
	const whereClause = `
		WHERE ($1 = '' OR EXISTS (
			SELECT 1 FROM title_genres tg
			JOIN genres g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = $1))
		AND ($2 = '' OR c.slug = $2)
		AND ($3::int IS NULL OR t.year = $3)
		AND ($4 = '' OR t.name LIKE '%' || $4 || '%')`

	const countQuery = `
		SELECT COUNT(*)
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id` + whereClause

	const pageQuery = `
		SELECT t.id, t.name, t.year, t.description, c.id, c.name, c.slug,
		       (SELECT AVG(r.score)::float8 FROM reviews r WHERE r.title_id = t.id)
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id` + whereClause + `
		ORDER BY t.name ASC
		LIMIT $5 OFFSET $6`

	var total int
	err := repository.pool.QueryRow(context, countQuery,
		filter.GenreSlug, filter.CategorySlug, filter.Year, filter.Name,
	).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	rows, err := repository.pool.Query(context, pageQuery,
		filter.GenreSlug, filter.CategorySlug, filter.Year, filter.Name, limit, offset,
	)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0, limit)
	titleIDs := make([]int64, 0, limit)

	for rows.Next() {
		title := &Title{}
		var categoryID *int64
		var categoryName, categorySlug *string

		err := rows.Scan(
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&categoryID,
			&categoryName,
			&categorySlug,
			&title.Rating,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}

		if categoryID != nil {
			title.Category = &category.Category{ID: *categoryID, Name: *categoryName, Slug: *categorySlug}
		}

		titles = append(titles, title)
		titleIDs = append(titleIDs, title.ID)
	}
	rows.Close()

	genresByTitle, err := repository.loadGenres(context, titleIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, title := range titles {
		title.Genres = genresByTitle[title.ID]
	}

	return titles, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, categorySlug *string, genreSlugs *[]string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	if categorySlug != nil {
		resolvedCategory, err := resolveCategory(context, tx, *categorySlug)
		if err != nil {
			return err
		}
		title.Category = resolvedCategory
	}

	const updateQuery = `
		UPDATE titles
		SET name = $2, year = $3, description = $4, category_id = $5
		WHERE id = $1`

	var categoryID *int64
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	tag, err := tx.Exec(context, updateQuery, title.ID, title.Name, title.Year, title.Description, categoryID)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	if genreSlugs != nil {
		resolvedGenres, err := resolveGenres(context, tx, *genreSlugs)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(context, `DELETE FROM title_genres WHERE title_id = $1`, title.ID); err != nil {
			return dberr.Wrap(err, "clear_title_genres")
		}
		if err := linkGenres(context, tx, title.ID, resolvedGenres); err != nil {
			return err
		}
		title.Genres = resolvedGenres
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_update_title")
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM titles WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// # Relation Helpers

// loadGenres fetches the genres for a set of titles in one query.
func (repository *PostgresRepository) loadGenres(context context.Context, titleIDs []int64) (map[int64][]genre.Genre, error) {
	genresByTitle := make(map[int64][]genre.Genre, len(titleIDs))
	if len(titleIDs) == 0 {
		return genresByTitle, nil
	}

	const query = `
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM title_genres tg
		JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name ASC`

	rows, err := repository.pool.Query(context, query, titleIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var linked genre.Genre
		if err := rows.Scan(&titleID, &linked.ID, &linked.Name, &linked.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_title_genre")
		}
		genresByTitle[titleID] = append(genresByTitle[titleID], linked)
	}

	// Hydrate empty slices so JSON shows [] rather than null.
	for _, id := range titleIDs {
		if genresByTitle[id] == nil {
			genresByTitle[id] = []genre.Genre{}
		}
	}

	return genresByTitle, nil
}

// resolveCategory looks up a category by slug within the transaction.
// An empty slug resolves to nil (no category).
func resolveCategory(context context.Context, tx pgx.Tx, slug string) (*category.Category, error) {
	if slug == "" {
		return nil, nil
	}

	const query = `SELECT id, name, slug FROM categories WHERE slug = $1`

	resolved := &category.Category{}
	err := tx.QueryRow(context, query, slug).Scan(&resolved.ID, &resolved.Name, &resolved.Slug)
	if err != nil {
		if apperr.IsNotFound(dberr.Wrap(err, "resolve_category")) {
			return nil, validate.RequiredError("category", "Unknown category slug: "+slug)
		}
		return nil, dberr.Wrap(err, "resolve_category")
	}

	return resolved, nil
}

// resolveGenres looks up genres by slug within the transaction.
// Every slug must resolve; a single unknown slug fails the whole write.
func resolveGenres(context context.Context, tx pgx.Tx, slugs []string) ([]genre.Genre, error) {
	resolved := make([]genre.Genre, 0, len(slugs))
	if len(slugs) == 0 {
		return resolved, nil
	}

	const query = `SELECT id, name, slug FROM genres WHERE slug = ANY($1)`

	rows, err := tx.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_genres")
	}
	defer rows.Close()

	bySlug := make(map[string]genre.Genre, len(slugs))
	for rows.Next() {
		var found genre.Genre
		if err := rows.Scan(&found.ID, &found.Name, &found.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_resolved_genre")
		}
		bySlug[found.Slug] = found
	}

	for _, requested := range slugs {
		found, ok := bySlug[requested]
		if !ok {
			return nil, validate.RequiredError("genre", "Unknown genre slug: "+requested)
		}
		resolved = append(resolved, found)
	}

	return resolved, nil
}

// linkGenres inserts the title/genre association rows.
func linkGenres(context context.Context, tx pgx.Tx, titleID int64, genres []genre.Genre) error {
	const query = `INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for _, linked := range genres {
		if _, err := tx.Exec(context, query, titleID, linked.ID); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return nil
}
