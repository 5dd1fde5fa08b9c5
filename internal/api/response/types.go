package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mcoot/fnstats/internal/api/apierr"
	"github.com/mcoot/fnstats/internal/model"
)

// Status messages returned by the API
const (
	StatusRunning        = "API is running"
	MessagePlayerCreated = "Player created successfully"
	MessageLoginOK       = "Login successful"
)

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

// Message is a plain confirmation response
type Message struct {
	Message string `json:"message"`
}

// Players is the response for the player directory
type Players struct {
	Players []model.PlayerRef `json:"players"`
}

// Stats is the response for both stats endpoints
type Stats struct {
	Stats []model.Row `json:"stats"`
}

// PlayersFromModel wraps refs, never encoding a null collection
func PlayersFromModel(refs []model.PlayerRef) Players {
	if refs == nil {
		refs = []model.PlayerRef{}
	}
	return Players{Players: refs}
}

// StatsFromModel wraps rows, never encoding a null collection
func StatsFromModel(rows []model.Row) Stats {
	if rows == nil {
		rows = []model.Row{}
	}
	return Stats{Stats: rows}
}

// JSON writes data as a JSON response. The body is encoded before the status
// is sent, so a row that cannot be encoded (a NaN float, say) becomes a 500
// instead of a truncated 200.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		apierr.WriteError(w, fmt.Errorf("failed to encode response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
