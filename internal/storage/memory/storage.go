package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mcoot/fnstats/internal/model"
	"github.com/mcoot/fnstats/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players      map[model.PlayerID]*model.Player
	playerOrder  []model.PlayerID
	stats        []model.Row
	statsHistory []model.Row
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]model.PlayerRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[model.PlayerRef]bool, len(s.playerOrder))
	refs := make([]model.PlayerRef, 0, len(s.playerOrder))
	for _, id := range s.playerOrder {
		ref := s.players[id].Ref()
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; ok {
		return fmt.Errorf("%w: %s", model.ErrPlayerExists, player.ID)
	}
	p := *player
	s.players[player.ID] = &p
	s.playerOrder = append(s.playerOrder, player.ID)
	return nil
}

// Credential operations

func (s *Storage) GetPasswordHash(ctx context.Context, id model.PlayerID) (*string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	if player.PasswordHash == nil {
		return nil, nil
	}
	hash := *player.PasswordHash
	return &hash, nil
}

func (s *Storage) SetPasswordHash(ctx context.Context, id model.PlayerID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.PasswordHash = &hash
	return nil
}

// Stats operations

func (s *Storage) ListStats(ctx context.Context) ([]model.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.stats), nil
}

func (s *Storage) ListStatsHistory(ctx context.Context) ([]model.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.statsHistory), nil
}

// AppendStats adds rows to the current stats table
func (s *Storage) AppendStats(rows ...model.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = append(s.stats, cloneRows(rows)...)
}

// AppendStatsHistory adds rows to the stats history table
func (s *Storage) AppendStatsHistory(rows ...model.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsHistory = append(s.statsHistory, cloneRows(rows)...)
}

func (s *Storage) Close() error {
	return nil
}

func cloneRows(rows []model.Row) []model.Row {
	out := make([]model.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
