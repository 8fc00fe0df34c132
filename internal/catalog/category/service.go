// Copyright (c) 2026 YaMDb. All rights reserved.

package category

import (
	"context"
	"log/slog"

	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
	"github.com/sdvkam/yamdb-final/pkg/slug"
)

// Service orchestrates business logic for the category collection.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// CreateInput holds the fields for a new category.
// An empty Slug is derived from the name.
type CreateInput struct {
	Name string
	Slug string
}

/*
Create validates and persists a new category.

Description: When no slug is supplied one is derived from the name. The slug
must be unique across the collection; duplicates surface as 400s.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Category: Created entity
  - error: Validation failures or duplicate slugs
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, NameMaxLength).
		Required("slug", input.Slug).
		MaxLen("slug", input.Slug, SlugMaxLength).
		Slug("slug", input.Slug)
	if err := v.Err(); err != nil {
		return nil, err
	}

	category := &Category{Name: input.Name, Slug: input.Slug}
	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return category, nil
}

// List retrieves a page of categories filtered by an optional name search.
func (service *Service) List(context context.Context, search string, params pagination.Params) ([]*Category, int, error) {
	return service.repository.List(context, search, params.Limit, params.Offset())
}

// Delete removes a category by slug.
func (service *Service) Delete(context context.Context, categorySlug string) error {
	if err := service.repository.DeleteBySlug(context, categorySlug); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", categorySlug))
	return nil
}
