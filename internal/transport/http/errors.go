package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/light-bringer/promo-console-service/internal/app/discount/domain"
	"github.com/light-bringer/promo-console-service/internal/pkg/committer"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// statusForError maps domain sentinels to HTTP statuses. Validation
// failures are 400, missing aggregates 404, contention (reservation or
// concurrent edit) 409, and edits forbidden by lifecycle state 422.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrDiscountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProductReserved),
		errors.Is(err, domain.ErrAlreadyActive),
		errors.Is(err, domain.ErrAlreadyInactive),
		errors.Is(err, committer.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDiscountExpired),
		errors.Is(err, domain.ErrLockedFieldViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrWindowNotFuture),
		errors.Is(err, domain.ErrInvalidMagnitude),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyDescription),
		errors.Is(err, domain.ErrNoProducts):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
