package sqldb

import (
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/mcoot/fnstats/internal/model"
)

// Stats tables are read with SELECT * and have no fixed model
const (
	statsTable        = "fortnite_player_stats"
	statsHistoryTable = "fortnite_player_stats_hist"
)

// playerRecord maps the fortnite_player table
type playerRecord struct {
	bun.BaseModel `bun:"table:fortnite_player"`

	PlayerID     string         `bun:"player_id,pk"`
	EpicID       string         `bun:"epic_id"`
	PasswordHash sql.NullString `bun:"password_hash"`
}

func playerRecordFromModel(p *model.Player) *playerRecord {
	rec := &playerRecord{
		PlayerID: string(p.ID),
		EpicID:   p.EpicID,
	}
	if p.PasswordHash != nil {
		rec.PasswordHash = sql.NullString{String: *p.PasswordHash, Valid: true}
	}
	return rec
}
