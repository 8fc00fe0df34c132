// Copyright (c) 2026 YaMDb. All rights reserved.

package comment

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

// Handler implements comment HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for mounting under
// /titles/{titleID}/reviews/{reviewID}/comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{commentID}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", handler.create)
		protected.Patch("/{commentID}", handler.update)
		protected.Delete("/{commentID}", handler.remove)
	})

	return router
}

type commentRequest struct {
	Text string `json:"text"`
}

// list returns a paginated page of comments for a review, oldest first.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

// create adds the caller's comment to a review.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := requestutil.RequiredUsername(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.Create(request.Context(), titleID, reviewID, author, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// get retrieves a single comment.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// update replaces a comment's text.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	principal := policy.FromClaims(requestutil.Claims(request))
	comment, err := handler.service.Update(request.Context(), principal, titleID, reviewID, commentID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// remove deletes a comment.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal := policy.FromClaims(requestutil.Claims(request))
	if err := handler.service.Delete(request.Context(), principal, titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// parentParams extracts the title and review identifiers from the URL.
func parentParams(request *http.Request) (int64, int64, error) {
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
