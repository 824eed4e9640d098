package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/blog-api/internal/api/httpx"
	"github.com/baharkarakas/blog-api/internal/api/validate"
	"github.com/baharkarakas/blog-api/internal/middleware"
	"github.com/baharkarakas/blog-api/internal/services"
)

// writeServiceError maps service errors onto status codes. Anything unknown
// is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", verrs.Error(), verrs)
	case errors.Is(err, services.ErrInvalidID):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_id", "invalid id", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
	case errors.Is(err, services.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "not allowed to modify this resource", nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", "already exists", nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", middleware.RequestIDFrom(r.Context()), "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func writeBadBody(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
}
