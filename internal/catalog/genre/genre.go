// Copyright (c) 2026 YaMDb. All rights reserved.

// Package genre manages the genre reference collection.
//
// Genres are many-to-many labels on titles ("Drama", "Comedy"). Like
// categories they are slug-identified, admin-writable, and support only
// create, list, and destroy.
package genre

import "context"

// Genre is a title label, identified by its slug.
type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

const (
	NameMaxLength = 256
	SlugMaxLength = 50
)

// Repository defines the persistence contract for genres.
type Repository interface {
	Create(context context.Context, genre *Genre) error
	List(context context.Context, search string, limit, offset int) ([]*Genre, int, error)

	// DeleteBySlug removes a genre and its title associations; the titles
	// themselves are untouched.
	DeleteBySlug(context context.Context, slug string) error
}
