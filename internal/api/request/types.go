package request

// CreatePlayerRequest is the request body for creating a player
type CreatePlayerRequest struct {
	PlayerID string `json:"PLAYER_ID"`
	EpicID   string `json:"EPIC_ID"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}
