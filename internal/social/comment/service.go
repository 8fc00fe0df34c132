// Copyright (c) 2026 YaMDb. All rights reserved.

package comment

import (
	"context"
	"log/slog"

	"github.com/sdvkam/yamdb-final/internal/platform/policy"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// moderationPolicy matches the review rules: author, moderator, or admin.
var moderationPolicy = policy.AnyOf(policy.IsAuthor(), policy.IsModerator(), policy.IsAdmin())

// Service orchestrates business logic for comments.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Create validates and persists a new comment by the given author.
func (service *Service) Create(context context.Context, titleID, reviewID int64, author, text string) (*Comment, error) {
	v := &validate.Validator{}
	if err := v.Required("text", text).Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		TitleID:  titleID,
		Author:   author,
		Text:     text,
	}
	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", reviewID),
	)
	return comment, nil
}

// Get retrieves a single comment within a review.
func (service *Service) Get(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	return service.repository.GetByID(context, titleID, reviewID, commentID)
}

// List retrieves a page of comments for a review, oldest first.
func (service *Service) List(context context.Context, titleID, reviewID int64, params pagination.Params) ([]*Comment, int, error) {
	return service.repository.ListByReview(context, titleID, reviewID, params.Limit, params.Offset())
}

// Update replaces a comment's text on behalf of a principal. Only the
// author, a moderator, or an admin may do so.
func (service *Service) Update(context context.Context, principal *policy.Principal, titleID, reviewID, commentID int64, text string) (*Comment, error) {
	comment, err := service.repository.GetByID(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := moderationPolicy(principal, "", comment); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if err := v.Required("text", text).Err(); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repository.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", commentID))
	return comment, nil
}

// Delete removes a comment on behalf of a principal, applying the same
// moderation rules as Update.
func (service *Service) Delete(context context.Context, principal *policy.Principal, titleID, reviewID, commentID int64) error {
	comment, err := service.repository.GetByID(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := moderationPolicy(principal, "", comment); err != nil {
		return err
	}

	if err := service.repository.Delete(context, titleID, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.Int64("comment_id", commentID))
	return nil
}
