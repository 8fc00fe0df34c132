// Copyright (c) 2026 YaMDb. All rights reserved.

package genre

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
)

type fakeRepository struct {
	genres map[string]*Genre
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{genres: make(map[string]*Genre), nextID: 1}
}

func (repo *fakeRepository) Create(_ context.Context, genre *Genre) error {
	if _, exists := repo.genres[genre.Slug]; exists {
		return apperr.ValidationError("A record with these unique values already exists")
	}
	genre.ID = repo.nextID
	repo.nextID++
	stored := *genre
	repo.genres[genre.Slug] = &stored
	return nil
}

func (repo *fakeRepository) List(_ context.Context, _ string, _, _ int) ([]*Genre, int, error) {
	out := make([]*Genre, 0, len(repo.genres))
	for _, genre := range repo.genres {
		found := *genre
		out = append(out, &found)
	}
	return out, len(out), nil
}

func (repo *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, exists := repo.genres[slug]; !exists {
		return apperr.NotFound("Genre")
	}
	delete(repo.genres, slug)
	return nil
}

func TestCreateDerivesSlug(t *testing.T) {
	service := NewService(newFakeRepository(), slog.Default())

	genre, err := service.Create(context.Background(), CreateInput{Name: "Sword & Sorcery"})
	require.NoError(t, err)
	assert.Equal(t, "sword-sorcery", genre.Slug)
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newFakeRepository(), slog.Default())

	_, err := service.Create(context.Background(), CreateInput{Name: "", Slug: "drama"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.Create(context.Background(), CreateInput{Name: "Drama", Slug: "Drama!"})
	require.Error(t, err)
}

func TestDeleteUnknownSlug(t *testing.T) {
	service := NewService(newFakeRepository(), slog.Default())

	err := service.Delete(context.Background(), "missing")
	assert.True(t, apperr.IsNotFound(err))
}
