package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/fnstats/internal/api/response"
	"github.com/mcoot/fnstats/internal/model"
	"github.com/mcoot/fnstats/internal/storage"
)

// StatsHandler handles the stats endpoints
type StatsHandler struct {
	storage storage.Storage
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(storage storage.Storage) *StatsHandler {
	return &StatsHandler{
		storage: storage,
	}
}

// Current handles GET /stats
func (h *StatsHandler) Current(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.storage.ListStats)
}

// History handles GET /stats_hist
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.storage.ListStatsHistory)
}

func (h *StatsHandler) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]model.Row, error)) {
	rows, err := fetch(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(rows))
}
