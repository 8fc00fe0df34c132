// Copyright (c) 2026 YaMDb. All rights reserved.

package category

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

// Handler implements category HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with category routes.
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

/*
List returns a paginated page of categories.

GET /api/v1/categories/?search=&page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.service.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create adds a new category.

POST /api/v1/categories/

Response:
  - 201: Created category
  - 400: Validation failure or duplicate slug
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
Remove deletes a category by slug.

DELETE /api/v1/categories/{slug}

Response:
  - 204: Deleted
  - 404: Unknown slug
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), categorySlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
