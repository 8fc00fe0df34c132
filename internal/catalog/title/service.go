// Copyright (c) 2026 YaMDb. All rights reserved.

package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// Service orchestrates business logic for the title catalogue.
type Service struct {
	repository  Repository
	ratingCache *RatingCache
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
// The rating cache may be nil; ratings are then recomputed on every read.
func NewService(repository Repository, ratingCache *RatingCache, logger *slog.Logger) *Service {
	return &Service{
		repository:  repository,
		ratingCache: ratingCache,
		logger:      logger,
	}
}

// CreateInput holds the fields for a new title.
type CreateInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

/*
Create validates and persists a new title.

Description: The year must not lie in the future. Category and genre slugs
must reference existing rows; unknown slugs surface as 400s.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity with relations expanded
  - error: Validation failures or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	if err := validateTitleFields(input.Name, input.Year); err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}
	if err := service.repository.Create(context, title, input.Category, input.Genres); err != nil {
		return nil, err
	}

	service.logger.Info("title_created", slog.Int64("title_id", title.ID))
	return title, nil
}

/*
Get retrieves a title with its rating.

Description: The rating is served from the per-title Redis cache when
present; on a miss it is recomputed from the reviews table and cached.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Title: Hydrated entity including rating
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	title, err := service.repository.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if rating, hit := service.ratingCache.Get(context, id); hit {
		title.Rating = rating
		return title, nil
	}

	rating, err := service.repository.GetRating(context, id)
	if err != nil {
		return nil, err
	}
	title.Rating = rating
	service.ratingCache.Set(context, id, rating)

	return title, nil
}

// List retrieves a page of titles matching the filter.
// Ratings are computed in bulk by the storage layer.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Title, int, error) {
	return service.repository.List(context, filter, params.Limit, params.Offset())
}

// UpdateInput defines the mutable subset of title fields.
// Nil pointers mean "leave unchanged"; an empty Category string clears it.
type UpdateInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      *[]string
}

/*
Update applies a partial set of changes to a title.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput

Returns:
  - *Title: The updated entity with relations expanded
  - error: Not found, validation, or storage failures
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	title, err := service.repository.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}

	if err := validateTitleFields(title.Name, title.Year); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, title, input.Category, input.Genres); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", id))
	return service.Get(context, id)
}

// Delete removes a title together with its reviews and comments.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	// The cached rating is now orphaned; drop it eagerly.
	_ = service.ratingCache.Invalidate(context, id)

	service.logger.Info("title_deleted", slog.Int64("title_id", id))
	return nil
}

// validateTitleFields enforces the shared create/update field rules.
func validateTitleFields(name string, year int) error {
	v := &validate.Validator{}
	v.Required("name", name).
		MaxLen("name", name, NameMaxLength).
		Custom("year", year > time.Now().Year(), "Must not be in the future").
		Custom("year", year == 0, "This field is required")
	return v.Err()
}
