// Copyright (c) 2026 YaMDb. All rights reserved.

package title

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/catalog/genre"
	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
)

// # Test Doubles

type fakeRepository struct {
	titles      map[int64]*Title
	ratings     map[int64]*float64
	knownGenres map[string]genre.Genre
	nextID      int64
	ratingCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles:      make(map[int64]*Title),
		ratings:     make(map[int64]*float64),
		knownGenres: map[string]genre.Genre{"drama": {ID: 1, Name: "Drama", Slug: "drama"}},
		nextID:      1,
	}
}

func (repo *fakeRepository) Create(_ context.Context, title *Title, _ string, genreSlugs []string) error {
	resolved := make([]genre.Genre, 0, len(genreSlugs))
	for _, slug := range genreSlugs {
		known, ok := repo.knownGenres[slug]
		if !ok {
			return validate.RequiredError("genre", "Unknown genre slug: "+slug)
		}
		resolved = append(resolved, known)
	}

	title.ID = repo.nextID
	repo.nextID++
	title.Genres = resolved
	stored := *title
	repo.titles[title.ID] = &stored
	return nil
}

func (repo *fakeRepository) GetByID(_ context.Context, id int64) (*Title, error) {
	title, exists := repo.titles[id]
	if !exists {
		return nil, apperr.NotFound("Title")
	}
	found := *title
	return &found, nil
}

func (repo *fakeRepository) GetRating(_ context.Context, id int64) (*float64, error) {
	repo.ratingCalls++
	return repo.ratings[id], nil
}

func (repo *fakeRepository) List(_ context.Context, filter Filter, _, _ int) ([]*Title, int, error) {
	matched := make([]*Title, 0)
	for _, title := range repo.titles {
		if filter.Year != nil && title.Year != *filter.Year {
			continue
		}
		found := *title
		found.Rating = repo.ratings[title.ID]
		matched = append(matched, &found)
	}
	return matched, len(matched), nil
}

func (repo *fakeRepository) Update(_ context.Context, title *Title, _ *string, _ *[]string) error {
	if _, exists := repo.titles[title.ID]; !exists {
		return apperr.NotFound("Title")
	}
	stored := *title
	repo.titles[title.ID] = &stored
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, exists := repo.titles[id]; !exists {
		return apperr.NotFound("Title")
	}
	delete(repo.titles, id)
	return nil
}

func newTestService(repo *fakeRepository) *Service {
	// nil cache: every Get recomputes the rating.
	return NewService(repo, nil, slog.Default())
}

// # Create

func TestCreateTitle(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	title, err := service.Create(context.Background(), CreateInput{
		Name:   "The Long Winter",
		Year:   2001,
		Genres: []string{"drama"},
	})
	require.NoError(t, err)
	assert.NotZero(t, title.ID)
	require.Len(t, title.Genres, 1)
	assert.Equal(t, "drama", title.Genres[0].Slug)
	assert.Nil(t, title.Rating)
}

func TestCreateRejectsFutureYear(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), CreateInput{
		Name: "Tomorrow",
		Year: time.Now().Year() + 1,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateAcceptsCurrentYear(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), CreateInput{
		Name: "This Year",
		Year: time.Now().Year(),
	})
	assert.NoError(t, err)
}

func TestCreateRejectsUnknownGenre(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), CreateInput{
		Name:   "Mystery",
		Year:   1999,
		Genres: []string{"nonexistent"},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Get

func TestGetComputesRating(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), CreateInput{Name: "Rated", Year: 2000})
	require.NoError(t, err)

	score := 7.5
	repo.ratings[created.ID] = &score

	title, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, title.Rating)
	assert.Equal(t, 7.5, *title.Rating)
	assert.Equal(t, 1, repo.ratingCalls)
}

func TestGetUnknownTitle(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Get(context.Background(), 42)
	assert.True(t, apperr.IsNotFound(err))
}

// # Update

func TestUpdatePartial(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), CreateInput{Name: "Old Name", Year: 1990})
	require.NoError(t, err)

	newName := "New Name"
	updated, err := service.Update(context.Background(), created.ID, UpdateInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, 1990, updated.Year)
}

func TestUpdateRejectsFutureYear(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), CreateInput{Name: "Stable", Year: 1990})
	require.NoError(t, err)

	badYear := time.Now().Year() + 5
	_, err = service.Update(context.Background(), created.ID, UpdateInput{Year: &badYear})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Delete

func TestDeleteTitle(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), CreateInput{Name: "Doomed", Year: 1985})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.True(t, apperr.IsNotFound(service.Delete(context.Background(), created.ID)))
}
