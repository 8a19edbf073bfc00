package booknotes

import (
	"errors"
	"net/http"

	"github.com/0xi4o/cms-api/internal/store"
)

// ErrMissingSlug reports an absent slug path parameter. Its text is
// surfaced verbatim to the client.
var ErrMissingSlug = errors.New("`slug` is missing. Please check your URL.")

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingSlug) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
