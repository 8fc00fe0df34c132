// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package comment manages comments on reviews.

A comment is unscored follow-up text nested under a review. The same
moderation rules as reviews apply: authors edit their own, moderators
and admins edit anyone's.
*/
package comment

import (
	"context"
	"time"
)

// Comment is a single reply to a review.
type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	TitleID  int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// OwnerUsername returns the comment's author for ownership policy checks.
func (comment *Comment) OwnerUsername() string {
	return comment.Author
}

// Repository defines the persistence contract for comments. All methods
// are scoped by both title and review; a comment reached through the
// wrong parent resolves as not found.
type Repository interface {
	// Create persists a new comment. A missing parent review is a 404.
	Create(context context.Context, comment *Comment) error

	// GetByID retrieves a comment within a review.
	GetByID(context context.Context, titleID, reviewID, commentID int64) (*Comment, error)

	// ListByReview retrieves a page of comments for a review, oldest first.
	ListByReview(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error)

	// Update persists changes to a comment's text.
	Update(context context.Context, comment *Comment) error

	// Delete removes a comment.
	Delete(context context.Context, titleID, reviewID, commentID int64) error
}
