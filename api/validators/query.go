package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// ParseQueryString returns the trimmed query value, or the default when the
// parameter is absent.
func ParseQueryString(r *http.Request, key, defaultVal string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal
	}
	return raw
}

// ParseQueryUUID parses an optional uuid query parameter. Absence is
// (uuid.Nil, nil); a present but malformed value is a validation error.
func ParseQueryUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return uuid.Nil, nil
	}
	value, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a uuid").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// RequireQueryUUID parses a mandatory uuid query parameter.
func RequireQueryUUID(r *http.Request, key string) (uuid.UUID, error) {
	value, err := ParseQueryUUID(r, key)
	if err != nil {
		return uuid.Nil, err
	}
	if value == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
