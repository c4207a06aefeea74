// Copyright (c) 2026 Averia. All rights reserved.
// Author: khanh.doan.dev@gmail.com

/*
Package account provides the HTTP delivery layer for the directory and profile.

It implements the RESTful interface for listing registered accounts, fetching
a single account, and the authenticated profile self-service.

# Security

The /users listing endpoints are public reads. The /profile endpoints require
an account resolved by the authentication gate.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/khanhdoan/averia/internal/platform/apperr"
	"github.com/khanhdoan/averia/internal/platform/middleware"
	requestutil "github.com/khanhdoan/averia/internal/platform/request"
	"github.com/khanhdoan/averia/internal/platform/respond"
	"github.com/khanhdoan/averia/internal/platform/validate"
	"github.com/khanhdoan/averia/internal/users/auth"
	"github.com/khanhdoan/averia/pkg/pagination"
)

// Handler implements the HTTP layer for the account directory and profile.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// UserRoutes returns a [chi.Router] for the public account directory.
//
// The listing is intended for back-office use but ships without a role
// check; both endpoints answer unauthenticated requests.
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAccounts)
	router.Get("/{id}", handler.getAccount)

	return router
}

// ProfileRoutes returns a [chi.Router] for authenticated profile self-service.
//
// The gate resolves the caller's token subject into a full account before
// any handler runs, so handlers read the account straight from the context.
func (handler *Handler) ProfileRoutes(verifier middleware.TokenVerifier, gate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.Authenticate(verifier))
	router.Use(middleware.RequireAuth())
	router.Use(gate)

	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)

	return router
}

// # Directory Endpoints

/*
GET /users.

Description: Lists registered accounts as an offset window. 'skip' defaults
to 0 and 'limit' to 100; malformed values fall back rather than erroring.
A window past the end of the directory returns an empty list, not 404.

Response:
  - 200: []Account: The requested window with pagination metadata
*/
func (handler *Handler) listAccounts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	accounts, meta, err := handler.accountService.ListAccounts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, meta)
}

/*
GET /users/{id}.

Description: Retrieves a single account by its ID.

Response:
  - 200: Account: The hydrated account
  - 400: ErrValidation: Malformed account ID
  - 404: ErrNotFound: No account with this ID
*/
func (handler *Handler) getAccount(writer http.ResponseWriter, request *http.Request) {
	accountID := requestutil.Param(request, "id")

	validator := &validate.Validator{}
	validator.Required("id", accountID).UUID("id", accountID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.accountService.GetAccount(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

// # Profile Endpoints

/*
GET /profile/me.

Description: Returns the full private profile of the authenticated caller.
The account was already loaded by the gate; no second lookup happens here.

Response:
  - 200: Account: Fully hydrated caller profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	account := auth.AccountFromContext(request.Context())
	if account == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	respond.OK(writer, account)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

/*
PATCH /profile/me.

Description: Applies partial updates to the authenticated caller's profile.
Absent fields are left untouched; email and role cannot be changed here.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: Account: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	account := auth.AccountFromContext(request.Context())
	if account == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.FirstName != nil {
		validator.Required(auth.FieldFirstName, *input.FirstName)
	}
	if input.LastName != nil {
		validator.Required(auth.FieldLastName, *input.LastName)
	}
	if input.Phone != nil {
		validator.Phone(auth.FieldPhone, *input.Phone)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.accountService.UpdateProfile(request.Context(), account.ID, UpdateProfileInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
