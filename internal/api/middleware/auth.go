package middleware

import (
	"net/http"

	"github.com/mcoot/fnstats/internal/api/apierr"
	"github.com/mcoot/fnstats/internal/services/auth"
)

// APIKeyHeader is the header clients send the shared secret in
const APIKeyHeader = "x-api-key"

// APIKey creates middleware that rejects requests without the configured API key
func APIKey(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authService.VerifyAPIKey(r.Header.Get(APIKeyHeader)); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
