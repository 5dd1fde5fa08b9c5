package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player is a row of the player directory table
type Player struct {
	ID     PlayerID
	EpicID string
	// PasswordHash is a bcrypt digest; nil for legacy rows created without a password
	PasswordHash *string
}

// PlayerRef is the public projection of a Player returned by the directory listing
type PlayerRef struct {
	PlayerID string `json:"PLAYER_ID"`
	EpicID   string `json:"EPIC_ID"`
}

// Ref returns the directory projection of the player
func (p *Player) Ref() PlayerRef {
	return PlayerRef{
		PlayerID: string(p.ID),
		EpicID:   p.EpicID,
	}
}
