package handler

import (
	"net/http"

	"github.com/mcoot/fnstats/internal/api/response"
)

// Health handles GET /
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: response.StatusRunning})
}
