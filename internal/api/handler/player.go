package handler

import (
	"net/http"

	"github.com/mcoot/fnstats/internal/api/apierr"
	"github.com/mcoot/fnstats/internal/api/request"
	"github.com/mcoot/fnstats/internal/api/response"
	"github.com/mcoot/fnstats/internal/model"
	"github.com/mcoot/fnstats/internal/services/auth"
	"github.com/mcoot/fnstats/internal/storage"
)

// PlayerHandler handles player directory and login endpoints
type PlayerHandler struct {
	storage     storage.Storage
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(storage storage.Storage, authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{
		storage:     storage,
		authService: authService,
	}
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.storage.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Create handles PUT /player_create
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if req.PlayerID == "" || req.EpicID == "" {
		WriteError(w, apierr.NewInvalidRequestError("PLAYER_ID and EPIC_ID are required"))
		return
	}

	player := &model.Player{
		ID:     model.PlayerID(req.PlayerID),
		EpicID: req.EpicID,
	}
	if err := h.storage.CreatePlayer(r.Context(), player); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: response.MessagePlayerCreated})
}

// Login handles POST /login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := h.authService.Login(r.Context(), req.UserID, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: response.MessageLoginOK})
}
