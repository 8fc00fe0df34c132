// Copyright (c) 2026 YaMDb. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/policy"
	"github.com/sdvkam/yamdb-final/internal/platform/sec"
)

type reviewKey struct {
	titleID  int64
	reviewID int64
}

type fakeRepository struct {
	comments     map[int64]*Comment
	knownReviews map[reviewKey]bool
	nextID       int64
}

func newFakeRepository(keys ...reviewKey) *fakeRepository {
	known := make(map[reviewKey]bool, len(keys))
	for _, key := range keys {
		known[key] = true
	}
	return &fakeRepository{
		comments:     make(map[int64]*Comment),
		knownReviews: known,
		nextID:       1,
	}
}

func (repo *fakeRepository) Create(_ context.Context, comment *Comment) error {
	if !repo.knownReviews[reviewKey{comment.TitleID, comment.ReviewID}] {
		return apperr.NotFound("Review")
	}

	comment.ID = repo.nextID
	repo.nextID++
	comment.PubDate = time.Now()
	stored := *comment
	repo.comments[comment.ID] = &stored
	return nil
}

func (repo *fakeRepository) GetByID(_ context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	comment, exists := repo.comments[commentID]
	if !exists || comment.TitleID != titleID || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	found := *comment
	return &found, nil
}

func (repo *fakeRepository) ListByReview(_ context.Context, titleID, reviewID int64, _, _ int) ([]*Comment, int, error) {
	if !repo.knownReviews[reviewKey{titleID, reviewID}] {
		return nil, 0, apperr.NotFound("Review")
	}
	matched := make([]*Comment, 0)
	for _, comment := range repo.comments {
		if comment.TitleID == titleID && comment.ReviewID == reviewID {
			found := *comment
			matched = append(matched, &found)
		}
	}
	return matched, len(matched), nil
}

func (repo *fakeRepository) Update(_ context.Context, comment *Comment) error {
	existing, exists := repo.comments[comment.ID]
	if !exists || existing.TitleID != comment.TitleID || existing.ReviewID != comment.ReviewID {
		return apperr.NotFound("Comment")
	}
	stored := *comment
	repo.comments[comment.ID] = &stored
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, titleID, reviewID, commentID int64) error {
	existing, exists := repo.comments[commentID]
	if !exists || existing.TitleID != titleID || existing.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, commentID)
	return nil
}

func asPrincipal(username string, role sec.UserRole) *policy.Principal {
	return &policy.Principal{Username: username, Role: role}
}

func TestCreateComment(t *testing.T) {
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	comment, err := service.Create(context.Background(), 1, 10, "alice", "Totally agree.")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.Equal(t, "alice", comment.Author)
	assert.False(t, comment.PubDate.IsZero())
}

func TestCreateCommentEmptyText(t *testing.T) {
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	_, err := service.Create(context.Background(), 1, 10, "alice", "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateCommentUnknownReview(t *testing.T) {
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	_, err := service.Create(context.Background(), 1, 99, "alice", "lost")
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateCommentMisNestedReview(t *testing.T) {
	// Review 10 belongs to title 1; reaching it through title 2 is a 404.
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	_, err := service.Create(context.Background(), 2, 10, "alice", "wrong path")
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateCommentByAuthor(t *testing.T) {
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	created, err := service.Create(context.Background(), 1, 10, "alice", "typo hre")
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), asPrincipal("alice", sec.RoleUser), 1, 10, created.ID, "typo here")
	require.NoError(t, err)
	assert.Equal(t, "typo here", updated.Text)
}

func TestUpdateCommentDeniedForStranger(t *testing.T) {
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	created, err := service.Create(context.Background(), 1, 10, "alice", "mine")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), asPrincipal("bob", sec.RoleUser), 1, 10, created.ID, "hijacked")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
}

func TestDeleteCommentByModerator(t *testing.T) {
	repo := newFakeRepository(reviewKey{1, 10})
	service := NewService(repo, slog.Default())

	created, err := service.Create(context.Background(), 1, 10, "alice", "rude remark")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), asPrincipal("mod", sec.RoleModerator), 1, 10, created.ID))
	assert.Empty(t, repo.comments)
}

func TestDeleteCommentTwice(t *testing.T) {
	service := NewService(newFakeRepository(reviewKey{1, 10}), slog.Default())

	created, err := service.Create(context.Background(), 1, 10, "alice", "fleeting")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), asPrincipal("alice", sec.RoleUser), 1, 10, created.ID))
	err = service.Delete(context.Background(), asPrincipal("alice", sec.RoleUser), 1, 10, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}
