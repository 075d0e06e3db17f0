package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/response"
)

// writeError maps service error kinds to HTTP status codes. Forbidden uses
// FORBIDDEN_STATUS (401 unless configured otherwise).
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	detail := services.Detail(err)
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		response.Unauthorized(w, detail)
	case errors.Is(err, services.ErrForbidden):
		response.Error(w, config.ForbiddenStatus(), detail)
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrBadRequest):
		response.BadRequest(w, detail)
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// orderID parses the {id} path parameter.
func orderID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
