package redis

import (
	"fmt"

	"github.com/mcoot/fnstats/internal/model"
)

// Key prefix for all stats data
const keyPrefix = "fnstats"

// Hash fields of a player record
const (
	fieldPlayerID     = "player_id"
	fieldEpicID       = "epic_id"
	fieldPasswordHash = "password_hash"
)

// playerKey returns the Redis key for a player hash
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the LIST of player ids in insertion order
func playersIndexKey() string {
	return fmt.Sprintf("%s:players", keyPrefix)
}

// statsKey returns the Redis key for the current stats rows
func statsKey() string {
	return fmt.Sprintf("%s:stats", keyPrefix)
}

// statsHistoryKey returns the Redis key for the stats history rows
func statsHistoryKey() string {
	return fmt.Sprintf("%s:stats_hist", keyPrefix)
}
