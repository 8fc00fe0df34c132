// Copyright (c) 2026 YaMDb. All rights reserved.

package review

import (
	"context"
	"log/slog"

	"github.com/sdvkam/yamdb-final/internal/platform/policy"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// RatingInvalidator drops a title's cached average score. Every review
// mutation shifts the average, so the cache entry must go.
type RatingInvalidator interface {
	Invalidate(context context.Context, titleID int64) error
}

// moderationPolicy governs who may change an existing review: its author,
// a moderator, or an admin.
var moderationPolicy = policy.AnyOf(policy.IsAuthor(), policy.IsModerator(), policy.IsAdmin())

// Service orchestrates business logic for reviews.
type Service struct {
	repository Repository
	ratings    RatingInvalidator
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, ratings RatingInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		ratings:    ratings,
		logger:     logger,
	}
}

// CreateInput holds the fields for a new review.
type CreateInput struct {
	Text  string
	Score int
}

/*
Create validates and persists a new review by the given author.

Description: The score must lie within [ScoreMin, ScoreMax]. A second
review of the same title by the same author fails with a validation
error. The title's cached rating is invalidated on success.

Parameters:
  - context: context.Context
  - titleID: int64
  - author: string (Username from verified claims)
  - input: CreateInput

Returns:
  - *Review: Created review with ID and publication date set
  - error: Not found, validation, or storage failures
*/
func (service *Service) Create(context context.Context, titleID int64, author string, input CreateInput) (*Review, error) {
	if err := validateReviewFields(input.Text, input.Score); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID: titleID,
		Author:  author,
		Text:    input.Text,
		Score:   input.Score,
	}
	if err := service.repository.Create(context, review); err != nil {
		return nil, err
	}

	service.invalidateRating(context, titleID)
	service.logger.Info("review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
	)
	return review, nil
}

// Get retrieves a single review within a title.
func (service *Service) Get(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repository.GetByID(context, titleID, reviewID)
}

// List retrieves a page of reviews for a title, newest first.
func (service *Service) List(context context.Context, titleID int64, params pagination.Params) ([]*Review, int, error) {
	return service.repository.ListByTitle(context, titleID, params.Limit, params.Offset())
}

// UpdateInput defines the mutable subset of review fields.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Text  *string
	Score *int
}

/*
Update applies partial changes to a review on behalf of a principal.

Description: Only the author, a moderator, or an admin may modify the
review; everyone else gets a uniform 403. The title's cached rating is
invalidated when the write succeeds.

Parameters:
  - context: context.Context
  - principal: *policy.Principal (nil for anonymous)
  - titleID: int64
  - reviewID: int64
  - input: UpdateInput

Returns:
  - *Review: The updated review
  - error: Not found, denial, validation, or storage failures
*/
func (service *Service) Update(context context.Context, principal *policy.Principal, titleID, reviewID int64, input UpdateInput) (*Review, error) {
	review, err := service.repository.GetByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	// Ownership rules do not depend on the HTTP method.
	if err := moderationPolicy(principal, "", review); err != nil {
		return nil, err
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := validateReviewFields(review.Text, review.Score); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, review); err != nil {
		return nil, err
	}

	service.invalidateRating(context, titleID)
	service.logger.Info("review_updated",
		slog.Int64("review_id", reviewID),
		slog.Int64("title_id", titleID),
	)
	return review, nil
}

// Delete removes a review on behalf of a principal, applying the same
// moderation rules as Update.
func (service *Service) Delete(context context.Context, principal *policy.Principal, titleID, reviewID int64) error {
	review, err := service.repository.GetByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := moderationPolicy(principal, "", review); err != nil {
		return err
	}

	if err := service.repository.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.invalidateRating(context, titleID)
	service.logger.Info("review_deleted",
		slog.Int64("review_id", reviewID),
		slog.Int64("title_id", titleID),
	)
	return nil
}

// invalidateRating drops the cached average. The cache is advisory, so a
// failed invalidation is logged and swallowed.
func (service *Service) invalidateRating(context context.Context, titleID int64) {
	if service.ratings == nil {
		return
	}
	if err := service.ratings.Invalidate(context, titleID); err != nil {
		service.logger.Warn("rating_invalidation_failed",
			slog.Int64("title_id", titleID),
			slog.String("error", err.Error()),
		)
	}
}

// validateReviewFields enforces the shared create/update field rules.
func validateReviewFields(text string, score int) error {
	v := &validate.Validator{}
	v.Required("text", text).
		Range("score", score, ScoreMin, ScoreMax)
	return v.Err()
}
