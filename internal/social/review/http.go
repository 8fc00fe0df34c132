// Copyright (c) 2026 YaMDb. All rights reserved.

package review

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

// Handler implements review HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for mounting under /titles/{titleID}/reviews.
//
// Reads are public. Creating requires authentication; editing and deleting
// additionally pass ownership rules enforced in the service layer. The
// given comment router is mounted under /{reviewID}/comments.
func (handler *Handler) Routes(comments chi.Router) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{reviewID}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
		protected.Patch("/{reviewID}", handler.update)
		protected.Delete("/{reviewID}", handler.remove)
	})

	router.Mount("/{reviewID}/comments", comments)

	return router
}

// # Request Payloads

type createRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

/*
List returns a paginated page of reviews for a title, newest first.

GET /api/v1/titles/{titleID}/reviews/?page=&limit=
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.List(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create adds the caller's review for a title.

POST /api/v1/titles/{titleID}/reviews/

Response:
  - 201: Created review
  - 400: Validation failure or duplicate review
  - 404: Unknown title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := requestutil.RequiredUsername(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.Create(request.Context(), titleID, author, CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
Get retrieves a single review.

GET /api/v1/titles/{titleID}/reviews/{reviewID}
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
Update applies partial changes to a review.

PATCH /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 200: Updated review
  - 403: Caller is neither the author, a moderator, nor an admin
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	principal := policy.FromClaims(requestutil.Claims(request))
	review, err := handler.service.Update(request.Context(), principal, titleID, reviewID, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
Remove deletes a review and its comments.

DELETE /api/v1/titles/{titleID}/reviews/{reviewID}
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal := policy.FromClaims(requestutil.Claims(request))
	if err := handler.service.Delete(request.Context(), principal, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// reviewParams extracts the title and review identifiers from the URL.
func reviewParams(request *http.Request) (int64, int64, error) {
	titleID, err := requestutil.IntParam(request, "titleID")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := requestutil.IntParam(request, "reviewID")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
