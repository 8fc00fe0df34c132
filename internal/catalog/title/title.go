// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package title manages the reviewable works of the catalogue.

A title carries a name, a release year, an optional description, at most one
category, and any number of genres. Writes reference categories and genres by
slug; reads expand them back into full objects. The rating field is never
stored on the title row: it is the average of review scores, computed on
demand and cached per title in Redis.
*/
package title

import (
	"context"

	"github.com/sdvkam/yamdb-final/internal/catalog/category"
	"github.com/sdvkam/yamdb-final/internal/catalog/genre"
)

// # Domain Entities

// Title is a reviewable work in the catalogue.
type Title struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Description string             `json:"description"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`

	// Rating is the average review score, nil when the title has no reviews.
	Rating *float64 `json:"rating"`
}

// NameMaxLength caps the title name.
const NameMaxLength = 256

// # Query Types

// Filter narrows title listings. Zero values mean "no constraint".
type Filter struct {
	// GenreSlug matches titles carrying the genre.
	GenreSlug string
	// CategorySlug matches titles in the category.
	CategorySlug string
	// Year matches the release year exactly; nil means unfiltered.
	Year *int
	// Name performs a case-sensitive substring match.
	Name string
}

// # Repository Contract

// Repository defines the persistence contract for titles.
//
// Category and genre arguments are passed as slugs; implementations resolve
// them to rows and surface unknown slugs as validation errors.
type Repository interface {
	/*
		Create persists a new title with its category and genre links.

		Parameters:
		  - context: context.Context
		  - title: *Title (ID populated on return)
		  - categorySlug: string (empty means no category)
		  - genreSlugs: []string

		Returns:
		  - error: Unknown slugs as validation errors, or storage failures
	*/
	Create(context context.Context, title *Title, categorySlug string, genreSlugs []string) error

	/*
		GetByID retrieves a title with its category and genres expanded.
		The rating is NOT populated; callers obtain it via [GetRating] or
		the cache.

		Returns:
		  - *Title: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	GetByID(context context.Context, id int64) (*Title, error)

	/*
		GetRating computes the average review score for a title.

		Returns:
		  - *float64: The average, nil when the title has no reviews
		  - error: Storage failures
	*/
	GetRating(context context.Context, id int64) (*float64, error)

	/*
		List retrieves a page of titles matching the filter, with categories,
		genres, and ratings expanded in bulk.

		Returns:
		  - []*Title: Page ordered by name
		  - int: Total matching count
		  - error: Storage failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	/*
		Update persists changes to a title's scalar fields and, when the
		pointers are non-nil, rewrites its category or genre links.

		Parameters:
		  - context: context.Context
		  - title: *Title (Hydrated entity with scalar changes applied)
		  - categorySlug: *string (nil leaves the category untouched)
		  - genreSlugs: *[]string (nil leaves the genre links untouched)

		Returns:
		  - error: Unknown slugs as validation errors, or storage failures
	*/
	Update(context context.Context, title *Title, categorySlug *string, genreSlugs *[]string) error

	/*
		Delete removes a title. Its reviews and comments go with it.

		Returns:
		  - error: apperr.NotFound when no such title exists, or storage failures
	*/
	Delete(context context.Context, id int64) error
}
