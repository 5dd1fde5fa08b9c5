package sqldb

import "time"

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds SQL connection settings
type Config struct {
	// Driver is one of "sqlite", "postgres" or "mysql"
	Driver string
	// DSN is the driver-specific data source name
	DSN string

	// Pool settings; zero values keep the database/sql defaults
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns defaults for a local SQLite database
func DefaultConfig() Config {
	return Config{
		Driver:          DriverSQLite,
		DSN:             "fnstats.db",
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// driverName maps a configured driver to its registered database/sql name.
// pgx's stdlib registers itself as "pgx".
func driverName(driver string) string {
	if driver == DriverPostgres {
		return "pgx"
	}
	return driver
}
