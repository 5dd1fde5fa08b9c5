package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/fnstats/internal/model"
	"github.com/mcoot/fnstats/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]model.PlayerRef, error) {
	ids, err := s.client.LRange(ctx, playersIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.SliceCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HMGet(ctx, playerKey(model.PlayerID(id)), fieldPlayerID, fieldEpicID)
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, err
		}
	}

	seen := make(map[model.PlayerRef]bool, len(ids))
	refs := make([]model.PlayerRef, 0, len(ids))
	for _, cmd := range cmds {
		vals := cmd.Val()
		playerID, _ := vals[0].(string)
		if playerID == "" {
			// Index entry without a record; skip it
			continue
		}
		epicID, _ := vals[1].(string)
		ref := model.PlayerRef{PlayerID: playerID, EpicID: epicID}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	return refs, nil
}

// createPlayerScript creates a player in one step. KEYS[1] is the player
// hash and KEYS[2] the id index; ARGV is id, epic id and an optional hash.
// It returns 0 when the id already exists. Every check that can fail runs
// before the first write, so a failed create leaves nothing behind.
var createPlayerScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], 'player_id') == 1 then
	return 0
end
redis.call('RPUSH', KEYS[2], ARGV[1])
redis.call('HSET', KEYS[1], 'player_id', ARGV[1], 'epic_id', ARGV[2])
if #ARGV >= 3 then
	redis.call('HSET', KEYS[1], 'password_hash', ARGV[3])
end
return 1
`)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	args := []any{string(player.ID), player.EpicID}
	if player.PasswordHash != nil {
		args = append(args, *player.PasswordHash)
	}

	created, err := createPlayerScript.Run(ctx, s.client,
		[]string{playerKey(player.ID), playersIndexKey()}, args...).Int()
	if err != nil {
		return err
	}
	if created == 0 {
		return fmt.Errorf("%w: %s", model.ErrPlayerExists, player.ID)
	}
	return nil
}

// Credential operations

func (s *Storage) GetPasswordHash(ctx context.Context, id model.PlayerID) (*string, error) {
	vals, err := s.client.HMGet(ctx, playerKey(id), fieldPlayerID, fieldPasswordHash).Result()
	if err != nil {
		return nil, err
	}
	if vals[0] == nil {
		return nil, model.ErrPlayerNotFound
	}
	hash, ok := vals[1].(string)
	if !ok {
		return nil, nil
	}
	return &hash, nil
}

func (s *Storage) SetPasswordHash(ctx context.Context, id model.PlayerID, hash string) error {
	key := playerKey(id)
	exists, err := s.client.HExists(ctx, key, fieldPlayerID).Result()
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrPlayerNotFound
	}
	return s.client.HSet(ctx, key, fieldPasswordHash, hash).Err()
}

// Stats operations

func (s *Storage) ListStats(ctx context.Context) ([]model.Row, error) {
	return s.listRows(ctx, statsKey())
}

func (s *Storage) ListStatsHistory(ctx context.Context) ([]model.Row, error) {
	return s.listRows(ctx, statsHistoryKey())
}

// AppendStats adds rows to the current stats list
func (s *Storage) AppendStats(ctx context.Context, rows ...model.Row) error {
	return s.appendRows(ctx, statsKey(), rows)
}

// AppendStatsHistory adds rows to the stats history list
func (s *Storage) AppendStatsHistory(ctx context.Context, rows ...model.Row) error {
	return s.appendRows(ctx, statsHistoryKey(), rows)
}

func (s *Storage) listRows(ctx context.Context, key string) ([]model.Row, error) {
	items, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]model.Row, 0, len(items))
	for _, item := range items {
		// UseNumber keeps integer columns from turning into floats
		dec := json.NewDecoder(strings.NewReader(item))
		dec.UseNumber()
		var row model.Row
		if err := dec.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode row in %s: %w", key, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *Storage) appendRows(ctx context.Context, key string, rows []model.Row) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]any, len(rows))
	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		values[i] = data
	}
	return s.client.RPush(ctx, key, values...).Err()
}
