package handler

import (
	"errors"
	"net/url"
	"strconv"

	"validarfc/internal/validation/models"
	dErrors "validarfc/pkg/domain-errors"
)

// ValidateRequest is the HTTP request body for POST /validate.
type ValidateRequest struct {
	// Pointer so a missing field can be told apart from an empty string.
	RFC *string `json:"rfc"`
}

// Validate only checks presence. Any string, empty or malformed, is a valid
// request; judging it is the validator's job.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.RFC == nil {
		return dErrors.New(dErrors.CodeValidation, "rfc is required")
	}
	return nil
}

// parsePageRequest reads page and per_page from the query string. Missing or
// non-integer values fall back to the defaults; range clamping happens in the
// service.
func parsePageRequest(q url.Values) models.PageRequest {
	return models.PageRequest{
		Page:    intParam(q, "page", models.DefaultPage),
		PerPage: intParam(q, "per_page", models.DefaultPerPage),
	}
}

func intParam(q url.Values, key string, fallback int) int {
	raw := q.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// Atoi saturates out-of-range values; normalization clamps them.
		return v
	}
	if err != nil {
		return fallback
	}
	return v
}
