package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/fnstats/internal/api/apierr"
)

// maxBodyBytes caps request bodies; every accepted body is a small JSON object
const maxBodyBytes = 1 << 20

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeBody decodes a JSON request body into dst. Any decode failure is
// reported as an invalid request.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}
