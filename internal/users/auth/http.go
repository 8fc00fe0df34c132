// Copyright (c) 2026 YaMDb. All rights reserved.

/*
Package auth provides the HTTP delivery layer for the passwordless access flow.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Verification: Input shape is decoded here; field rules live in [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sdvkam/yamdb-final/internal/platform/constants"
	requestutil "github.com/sdvkam/yamdb-final/internal/platform/request"
	"github.com/sdvkam/yamdb-final/internal/platform/respond"
	"github.com/sdvkam/yamdb-final/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Registers an account and mails a confirmation code.
//   - POST /token  : Exchanges username + code for a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Both endpoints are public; there is nothing to be authenticated with yet.
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type signupResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup registers an account and mails out its confirmation code.

POST /api/v1/auth/signup

Description: Creates the account on first call; later calls with the same
username and email resend the existing code.

Request:
  - Body: signupRequest (Email, Username)

Response:
  - 200: signupResponse: Echo of the registered identity
  - 400: ErrInvalidJSON: Bad input, validation failure, or mail delivery failure
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Username: input.Username,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signupResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

/*
Token exchanges a username and confirmation code for an access token.

POST /api/v1/auth/token

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: Token payload
  - 400: Missing username or wrong confirmation code
  - 404: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), TokenInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldToken: token,
	})
}
