// Copyright (c) 2026 YaMDb. All rights reserved.

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sdvkam/yamdb-final/internal/platform/middleware"
	"github.com/sdvkam/yamdb-final/internal/platform/policy"
	requestutil "github.com/sdvkam/yamdb-final/internal/platform/request"
	"github.com/sdvkam/yamdb-final/internal/platform/respond"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// Handler implements title HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with title routes.
//
// Reads are public; mutations require admin power. The given review
// router is mounted under /{titleID}/reviews and carries its own access
// rules, so the admin policy here is applied per route rather than
// router-wide.
func (handler *Handler) Routes(reviews chi.Router) chi.Router {
	router := chi.NewRouter()
	adminOnly := middleware.RequirePolicy(policy.AnyOf(policy.IsAdminOrReadOnly()))

	router.Get("/", handler.list)
	router.With(adminOnly).Post("/", handler.create)
	router.Get("/{titleID}", handler.get)
	router.With(adminOnly).Patch("/{titleID}", handler.update)
	router.With(adminOnly).Delete("/{titleID}", handler.remove)

	router.Mount("/{titleID}/reviews", reviews)

	return router
}

// # Request Payloads

type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
List returns a paginated, filtered page of titles.

GET /api/v1/titles/?genre=&category=&year=&name=&page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		GenreSlug:    query.Get("genre"),
		CategorySlug: query.Get("category"),
		Name:         query.Get("name"),
	}
	if rawYear := query.Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("year", "Must be an integer"))
			return
		}
		filter.Year = &year
	}

	titles, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create adds a new title.

POST /api/v1/titles/

Response:
  - 201: Created title with relations expanded
  - 400: Validation failure or unknown category/genre slug
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
Get retrieves a single title with rating.

GET /api/v1/titles/{titleID}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Update applies partial changes to a title.

PATCH /api/v1/titles/{titleID}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.Update(request.Context(), titleID, UpdateInput{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Remove deletes a title and everything under it.

DELETE /api/v1/titles/{titleID}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
