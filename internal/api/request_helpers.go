package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Sanjeev-Guntha/synapse/internal/api/shared"
	"github.com/Sanjeev-Guntha/synapse/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pathParam extracts a required chi URL parameter.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	return v, nil
}

// uuidPathParam extracts a required chi URL parameter holding a UUID.
func uuidPathParam(r *http.Request, name string) (uuid.UUID, error) {
	v, err := pathParam(r, name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidID, name, err)
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into v and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

// formBool reads a boolean form or query value, treating absence as false.
func formBool(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.FormValue(key))
	return err == nil && b
}
