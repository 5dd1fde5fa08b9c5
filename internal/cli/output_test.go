package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutput_StatsText(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.Print(StatsResult{Stats: []map[string]any{
		{"PLAYER_ID": "p1", "WINS": json.Number("3")},
		{"PLAYER_ID": "p2", "KILLS": json.Number("10"), "WINS": nil},
	}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"KILLS", "PLAYER_ID", "WINS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"p1", "3"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"10", "p2"}, strings.Fields(lines[2]))
}

func TestOutput_EmptyResults(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("text", &buf)

	out.Print(PlayersResult{})
	out.Print(StatsResult{})

	assert.Equal(t, "No players\nNo rows\n", buf.String())
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf).PrintMessage("done")

	var msg MessageResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	assert.Equal(t, "done", msg.Message)
}

func TestClient_SendsAPIKeyAndParsesErrors(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(APIKeyHeader)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", "k")
	err := c.Get(t.Context(), "/players", nil)

	assert.Equal(t, "k", gotKey)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized (UNAUTHORIZED)", apiErr.Error())
}

func TestClient_NonEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewClient(server.URL, "").Get(t.Context(), "/", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}
