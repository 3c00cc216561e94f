package httpx

import (
	"errors"
	"net/http"

	"github.com/solvaders/clubhub/internal/shared"
)

// RespondError maps domain errors to wire responses. Expired tokens keep
// the 401 status of every other token failure but carry a
// distinguishable body. Internal errors never leak detail.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrDuplicateEmail):
		Error(w, http.StatusConflict, "DuplicateEmail")
	case errors.Is(err, shared.ErrDuplicate):
		Error(w, http.StatusConflict, "Conflict")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "InvalidCredentials")
	case errors.Is(err, shared.ErrTokenExpired):
		Error(w, http.StatusUnauthorized, "TokenExpired")
	case errors.Is(err, shared.ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, "NotFound")
	case errors.Is(err, shared.ErrWeakPassword):
		Error(w, http.StatusBadRequest, "WeakPassword")
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, "ValidationError")
	default:
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
