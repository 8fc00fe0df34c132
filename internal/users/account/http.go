// Copyright (c) 2026 YaMDb. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sdvkam/yamdb-final/internal/platform/middleware"
	requestutil "github.com/sdvkam/yamdb-final/internal/platform/request"
	"github.com/sdvkam/yamdb-final/internal/platform/respond"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
	"github.com/sdvkam/yamdb-final/pkg/pagination"
)

// Handler implements user-management HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with user-management routes.
//
// # Endpoints
//   - GET    /            : List accounts (admin)
//   - POST   /            : Create an account (admin)
//   - GET    /me          : Own profile
//   - PATCH  /me          : Update own profile (role is preserved)
//   - GET    /{username}  : Retrieve an account (admin)
//   - PATCH  /{username}  : Update an account (admin); PUT is an alias
//   - DELETE /{username}  : Remove an account (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service endpoints for any authenticated user.
	// Registered before /{username} so "me" never resolves as a username.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// Administration endpoints.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Put("/{username}", handler.update)
		r.Delete("/{username}", handler.remove)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

/*
List returns a paginated page of accounts.

GET /api/v1/users/?search=&page=&limit=

Response:
  - 200: Paginated list of users
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create registers a new account on behalf of an administrator.

POST /api/v1/users/

Response:
  - 201: Created account
  - 400: Validation failure or duplicate username/email
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Get retrieves a single account by username.

GET /api/v1/users/{username}

Response:
  - 200: The account
  - 404: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.Get(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update applies partial changes to an account.

PATCH /api/v1/users/{username}

Response:
  - 200: The updated account
  - 400: Validation failure
  - 404: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Update(request.Context(), username, UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Remove permanently deletes an account.

DELETE /api/v1/users/{username}

Response:
  - 204: Deleted
  - 404: Unknown username
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GetMe returns the authenticated user's own profile.

GET /api/v1/users/me

Response:
  - 200: The caller's account
  - 401: Not authenticated
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	username, err := requestutil.RequiredUsername(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Get(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateMe applies partial changes to the caller's own profile.

PATCH /api/v1/users/me

Description: The role field is ignored; users cannot change their own role.

Response:
  - 200: The updated account
  - 400: Validation failure
  - 401: Not authenticated
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	username, err := requestutil.RequiredUsername(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateSelf(request.Context(), username, UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
