package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/nextsaas/internal/api/dto"
	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/hugh/nextsaas/internal/orgs"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type validatable interface {
	Validate() map[string]string
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto responses. Anything that is not one of
// the known categories is logged and reported as a 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var badRequest *apperr.BadRequestError
	var unauthorized *apperr.UnauthorizedError

	switch {
	case errors.As(err, &badRequest):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: badRequest.Message, Details: badRequest.Details})
	case errors.As(err, &unauthorized):
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: unauthorized.Error()})
	case errors.Is(err, orgs.ErrAvatarStorageDisabled):
		writeJSON(w, http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Avatar uploads are not available."})
	default:
		logger.Error("unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error."})
	}
}

// decodeJSON reads the body into v and runs its validation.
func decodeJSON(w http.ResponseWriter, r *http.Request, v validatable) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	if errs := v.Validate(); len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}

func uuidParam(r *http.Request, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
