// Copyright (c) 2026 YaMDb. All rights reserved.

package genre

import (
	"context"
	"log/slog"

	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
	"github.com/sdvkam/yamdb-final/pkg/slug"
)

// Service orchestrates business logic for the genre collection.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// CreateInput holds the fields for a new genre.
// An empty Slug is derived from the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create validates and persists a new genre.
func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
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

	genre := &Genre{Name: input.Name, Slug: input.Slug}
	if err := service.repository.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

// List retrieves a page of genres filtered by an optional name search.
func (service *Service) List(context context.Context, search string, params pagination.Params) ([]*Genre, int, error) {
	return service.repository.List(context, search, params.Limit, params.Offset())
}

// Delete removes a genre by slug.
func (service *Service) Delete(context context.Context, genreSlug string) error {
	if err := service.repository.DeleteBySlug(context, genreSlug); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("slug", genreSlug))
	return nil
}
