package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/just-nibble/repo-dashboard/pkg/response"
)

// Recover converts an uncaught panic into a generic 500, logging the detail
// instead of leaking it to the caller.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				response.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
