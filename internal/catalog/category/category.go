// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package category manages the category reference collection.

A category is a broad classification for titles ("Movies", "Books"); each
title belongs to at most one. The collection is write-restricted to admins
and identified by slug, with no retrieve or update operations: a category is
created, listed, and eventually destroyed.
*/
package category

import "context"

// # Domain Entities

// Category is a broad title classification, identified by its slug.
type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// # Validation Limits

const (
	// NameMaxLength caps the display name.
	NameMaxLength = 256
	// SlugMaxLength caps the URL identifier.
	SlugMaxLength = 50
)

// # Repository Contract

// Repository defines the persistence contract for categories.
type Repository interface {
	/*
		Create persists a new category.

		Parameters:
		  - context: context.Context
		  - category: *Category (ID populated on return)

		Returns:
		  - error: Duplicate slug as a validation error, or storage failures
	*/
	Create(context context.Context, category *Category) error

	/*
		List retrieves a page of categories, optionally filtered by a search
		term matched against the name.

		Returns:
		  - []*Category: Page ordered by name
		  - int: Total matching count
		  - error: Storage failures
	*/
	List(context context.Context, search string, limit, offset int) ([]*Category, int, error)

	/*
		DeleteBySlug removes a category.

		Titles referencing it keep existing with their category cleared.

		Returns:
		  - error: apperr.NotFound when no such slug exists, or storage failures
	*/
	DeleteBySlug(context context.Context, slug string) error
}
