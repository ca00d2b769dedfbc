// Package controllers holds the HTTP handlers. Each controller binds and
// validates its request schema, delegates to a service, and maps service
// errors onto the JSON envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hydroline/hydroline/app/services"
	"github.com/hydroline/hydroline/pkg/logger"
	"github.com/hydroline/hydroline/pkg/middleware"
	"github.com/hydroline/hydroline/pkg/rbac"
	"github.com/hydroline/hydroline/pkg/response"
)

// respondErr maps service-layer errors onto HTTP statuses. Anything
// unrecognised is a 500 with the error's own description, which for gateway
// failures carries the gateway message through.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrDuplicate):
		response.Error(w, http.StatusConflict, "Resource already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrNoValidItems),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrAlreadyInCart),
		errors.Is(err, services.ErrInvalidSignature),
		errors.Is(err, services.ErrCannotCancel),
		errors.Is(err, services.ErrMissingPaymentID),
		errors.Is(err, services.ErrInvalidTransition):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// userID returns the authenticated caller, writing a 401 when absent.
func userID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
	}
	return id, ok
}

// isAdmin reports whether the caller carries the admin role.
func isAdmin(r *http.Request) bool {
	role, _ := middleware.RoleFromCtx(r)
	return role == rbac.RoleAdmin
}

// paramUint parses a chi URL parameter as an unsigned integer.
func paramUint(r *http.Request, name string) (uint, error) {
	n, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// pageParams reads ?page= and ?limit=, defaulting to the first page.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// queryUint parses an optional numeric query parameter.
func queryUint(r *http.Request, name string) uint {
	n, _ := strconv.ParseUint(r.URL.Query().Get(name), 10, 64)
	return uint(n)
}
