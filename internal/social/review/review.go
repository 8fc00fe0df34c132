// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package review manages user reviews of titles.

A review is a scored text opinion, always nested under a title. Each user
may review a title at most once; the average of all scores for a title is
its rating. Authors own their reviews, while moderators and admins may
edit or delete anyone's.
*/
package review

import (
	"context"
	"time"
)

// # Domain Entities

// Review is a single user's scored opinion of a title.
type Review struct {
	ID      int64     `json:"id"`
	TitleID int64     `json:"-"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

// OwnerUsername returns the review's author for ownership policy checks.
func (review *Review) OwnerUsername() string {
	return review.Author
}

// # Validation Limits

const (
	// ScoreMin is the lowest allowed score.
	ScoreMin = 1
	// ScoreMax is the highest allowed score.
	ScoreMax = 10
)

// # Repository Contract

// Repository defines the persistence contract for reviews.
//
// Every method is scoped by title: a review reached through the wrong
// title resolves as not found, never as someone else's review.
type Repository interface {
	/*
		Create persists a new review for a title.

		Parameters:
		  - context: context.Context
		  - review: *Review (ID and PubDate populated on return)

		Returns:
		  - error: apperr.NotFound when the title does not exist, a
		    validation error when the author already reviewed the title,
		    or storage failures
	*/
	Create(context context.Context, review *Review) error

	/*
		GetByID retrieves a review by ID within a title.

		Returns:
		  - *Review: The review
		  - error: apperr.NotFound when the review does not exist under
		    the given title, or storage failures
	*/
	GetByID(context context.Context, titleID, reviewID int64) (*Review, error)

	/*
		ListByTitle retrieves a page of reviews for a title, newest first.

		Returns:
		  - []*Review: Page of reviews
		  - int: Total review count for the title
		  - error: apperr.NotFound when the title does not exist, or
		    storage failures
	*/
	ListByTitle(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	/*
		Update persists changes to an existing review's text and score.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Update(context context.Context, review *Review) error

	/*
		Delete removes a review together with its comments.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, titleID, reviewID int64) error
}
