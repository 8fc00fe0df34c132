// Copyright (c) 2026 YaMDb. All rights reserved.

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sdvkam/yamdb-final/internal/platform/middleware"
	"github.com/sdvkam/yamdb-final/internal/platform/policy"
	requestutil "github.com/sdvkam/yamdb-final/internal/platform/request"
	"github.com/sdvkam/yamdb-final/internal/platform/respond"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// Handler implements genre HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with genre routes.
//
// Reads are public; mutations require admin power.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(policy.AnyOf(policy.IsAdminOrReadOnly())))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.remove)

	return router
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// GET /api/v1/genres/?search=&page=&limit=
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.service.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

// POST /api/v1/genres/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	genre, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

// DELETE /api/v1/genres/{slug}
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	genreSlug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), genreSlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
