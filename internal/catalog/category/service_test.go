// Copyright (c) 2026 YaMDb. All rights reserved.

package category

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdvkam/yamdb-final/internal/platform/apperr"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

type fakeRepository struct {
	categories map[string]*Category
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: make(map[string]*Category), nextID: 1}
}

func (repo *fakeRepository) Create(_ context.Context, category *Category) error {
	if _, exists := repo.categories[category.Slug]; exists {
		return apperr.ValidationError("A record with these unique values already exists")
	}
	category.ID = repo.nextID
	repo.nextID++
	stored := *category
	repo.categories[category.Slug] = &stored
	return nil
}

func (repo *fakeRepository) List(_ context.Context, search string, limit, offset int) ([]*Category, int, error) {
	matched := make([]*Category, 0)
	for _, category := range repo.categories {
		if search == "" || strings.Contains(strings.ToLower(category.Name), strings.ToLower(search)) {
			found := *category
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	if offset > total {
		return []*Category{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repo *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, exists := repo.categories[slug]; !exists {
		return apperr.NotFound("Category")
	}
	delete(repo.categories, slug)
	return nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, slog.Default()), repo
}

func TestCreateWithExplicitSlug(t *testing.T) {
	service, _ := newTestService()

	category, err := service.Create(context.Background(), CreateInput{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)
	assert.Equal(t, "movies", category.Slug)
	assert.NotZero(t, category.ID)
}

func TestCreateDerivesSlugFromName(t *testing.T) {
	service, _ := newTestService()

	category, err := service.Create(context.Background(), CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	service, _ := newTestService()

	testCases := []struct {
		name  string
		input CreateInput
	}{
		{"empty name", CreateInput{Slug: "movies"}},
		{"bad slug format", CreateInput{Name: "Movies", Slug: "Not A Slug"}},
		{"slug too long", CreateInput{Name: "Movies", Slug: strings.Repeat("a", SlugMaxLength+1)}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), testCase.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), CreateInput{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), CreateInput{Name: "Films", Slug: "movies"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestListWithSearch(t *testing.T) {
	service, _ := newTestService()
	for _, name := range []string{"Movies", "Music", "Books"} {
		_, err := service.Create(context.Background(), CreateInput{Name: name})
		require.NoError(t, err)
	}

	categories, total, err := service.List(context.Background(), "m", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, categories, 2)
	assert.Equal(t, "Movies", categories[0].Name)
	assert.Equal(t, "Music", categories[1].Name)
}

func TestDelete(t *testing.T) {
	service, _ := newTestService()
	_, err := service.Create(context.Background(), CreateInput{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "movies"))
	assert.True(t, apperr.IsNotFound(service.Delete(context.Background(), "movies")))
}
