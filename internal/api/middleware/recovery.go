package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/fnstats/internal/api/apierr"
	"github.com/mcoot/fnstats/internal/middleware"
)

// Recovery turns handler panics into the generic JSON 500. The panic value
// is logged but never sent to the client.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ *middleware.PanicError) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
