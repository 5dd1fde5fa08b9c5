// Package sqldb implements storage on top of a relational database through bun.
// The player and stats tables are owned externally; this package only reads
// and writes rows and never creates or migrates schema.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/mcoot/fnstats/internal/model"
	"github.com/mcoot/fnstats/internal/storage"
)

// Storage is a SQL-backed implementation of the storage interface
type Storage struct {
	db *bun.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New opens a connection pool for cfg and verifies it with a ping
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Storage, error) {
	sqlDB, err := sql.Open(driverName(cfg.Driver), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	// Each connection to an in-memory SQLite database sees its own database
	if cfg.Driver == DriverSQLite && cfg.DSN == ":memory:" {
		maxOpen, maxIdle = 1, 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	bunDB, err := newBunDB(sqlDB, cfg.Driver)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if logger != nil {
		bunDB.AddQueryHook(&queryLogger{logger: logger.With(slog.String("driver", cfg.Driver))})
	}

	return &Storage{db: bunDB}, nil
}

// NewWithDB wraps an existing bun.DB (for testing)
func NewWithDB(db *bun.DB) *Storage {
	return &Storage{db: db}
}

func newBunDB(sqlDB *sql.DB, driver string) (*bun.DB, error) {
	switch driver {
	case DriverSQLite:
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres:
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case DriverMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// DB returns the underlying bun handle
func (s *Storage) DB() *bun.DB {
	return s.db
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Player operations
//
// Projected columns are aliased to their lowercase names so rows scan into
// playerRecord whatever case the external schema declares them in.

func (s *Storage) ListPlayers(ctx context.Context) ([]model.PlayerRef, error) {
	var records []playerRecord
	err := s.db.NewSelect().
		Model(&records).
		Distinct().
		ColumnExpr("player_id AS player_id, epic_id AS epic_id").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	refs := make([]model.PlayerRef, len(records))
	for i, rec := range records {
		refs[i] = model.PlayerRef{PlayerID: rec.PlayerID, EpicID: rec.EpicID}
	}
	return refs, nil
}

// CreatePlayer inserts a player row. Duplicate ids surface as the driver's
// constraint error.
func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.NewInsert().
		Model(playerRecordFromModel(player)).
		Exec(ctx)
	return err
}

// Credential operations

func (s *Storage) GetPasswordHash(ctx context.Context, id model.PlayerID) (*string, error) {
	var rec playerRecord
	err := s.db.NewSelect().
		Model(&rec).
		ColumnExpr("password_hash AS password_hash").
		Where("player_id = ?", string(id)).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	if !rec.PasswordHash.Valid {
		return nil, nil
	}
	return &rec.PasswordHash.String, nil
}

func (s *Storage) SetPasswordHash(ctx context.Context, id model.PlayerID, hash string) error {
	res, err := s.db.NewUpdate().
		Model((*playerRecord)(nil)).
		Set("password_hash = ?", hash).
		Where("player_id = ?", string(id)).
		Exec(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Stats operations

func (s *Storage) ListStats(ctx context.Context) ([]model.Row, error) {
	return s.selectAll(ctx, statsTable)
}

func (s *Storage) ListStatsHistory(ctx context.Context) ([]model.Row, error) {
	return s.selectAll(ctx, statsHistoryTable)
}

// selectAll returns every column of every row in table
func (s *Storage) selectAll(ctx context.Context, table string) ([]model.Row, error) {
	var maps []map[string]any
	err := s.db.NewSelect().
		TableExpr("?", bun.Ident(table)).
		ColumnExpr("*").
		Scan(ctx, &maps)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	rows := make([]model.Row, len(maps))
	for i, m := range maps {
		rows[i] = normalizeRow(m)
	}
	return rows, nil
}

// normalizeRow converts UTF-8 byte slices to strings so that text columns
// encode as JSON strings. Binary values stay bytes and encode as base64.
func normalizeRow(m map[string]any) model.Row {
	row := make(model.Row, len(m))
	for k, v := range m {
		if b, ok := v.([]byte); ok && utf8.Valid(b) {
			row[k] = string(b)
			continue
		}
		row[k] = v
	}
	return row
}
