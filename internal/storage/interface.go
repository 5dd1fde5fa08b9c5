package storage

import (
	"context"

	"github.com/mcoot/fnstats/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player directory operations
	ListPlayers(ctx context.Context) ([]model.PlayerRef, error)
	CreatePlayer(ctx context.Context, player *model.Player) error

	// Credential operations
	// GetPasswordHash returns model.ErrPlayerNotFound if no player row exists.
	// A nil hash with a nil error means the row exists but has no password set.
	GetPasswordHash(ctx context.Context, id model.PlayerID) (*string, error)
	SetPasswordHash(ctx context.Context, id model.PlayerID, hash string) error

	// Stats operations
	ListStats(ctx context.Context) ([]model.Row, error)
	ListStatsHistory(ctx context.Context) ([]model.Row, error)

	Close() error
}
