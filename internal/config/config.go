// Package config resolves server configuration from flags, environment,
// an optional .env file and an optional fnstats.yaml file. The result is
// built once at startup and passed to the components that need it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/fnstats/internal/factory"
	"github.com/mcoot/fnstats/internal/services/auth"
	redisstorage "github.com/mcoot/fnstats/internal/storage/redis"
	"github.com/mcoot/fnstats/internal/storage/sqldb"
)

// EnvPrefix is prepended to every environment variable key
const EnvPrefix = "FNSTATS"

// Config is the full server configuration
type Config struct {
	LogLevel    string         `mapstructure:"log_level"`
	APIKey      string         `mapstructure:"api_key"`
	StorageType string         `mapstructure:"storage_type"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds SQL connection settings
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// SSLMode applies to postgres only
	SSLMode string `mapstructure:"sslmode"`
	// DSN overrides every other connection field when set
	DSN string `mapstructure:"dsn"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL          string `mapstructure:"url"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
}

// defaults are applied before any other source
var defaults = map[string]any{
	"log_level":                  "info",
	"api_key":                    "",
	"storage_type":               factory.StorageTypeSQL,
	"server.host":                "",
	"server.port":                8000,
	"server.read_timeout":        15 * time.Second,
	"server.write_timeout":       60 * time.Second,
	"server.shutdown_timeout":    30 * time.Second,
	"database.driver":            sqldb.DriverSQLite,
	"database.host":              "",
	"database.port":              0,
	"database.name":              "fnstats.db",
	"database.user":              "",
	"database.password":          "",
	"database.sslmode":           "prefer",
	"database.dsn":               "",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    25,
	"database.conn_max_lifetime": 5 * time.Minute,
	"redis.url":                  "redis://localhost:6379",
	"redis.pool_size":            10,
	"redis.min_idle_conns":       2,
}

// legacyEnv maps keys to the unprefixed variable names earlier deployments used
var legacyEnv = map[string]string{
	"api_key":           "API_KEY",
	"database.host":     "DB_SERVER",
	"database.name":     "DB_NAME",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
}

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"log-level": "log_level",
	"storage":   "storage_type",
	"db-driver": "database.driver",
	"db-dsn":    "database.dsn",
	"redis-url": "redis.url",
}

// AddFlags registers the configuration flags on cmd
func AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file (default: ./fnstats.yaml if present)")
	flags.String("env-file", ".env", "Path to a dotenv file loaded into the environment if present")
	flags.String("host", "", "Listen host")
	flags.Int("port", 8000, "Listen port")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("storage", factory.StorageTypeSQL, "Storage backend: sql, memory, redis")
	flags.String("db-driver", sqldb.DriverSQLite, "SQL driver: sqlite, postgres, mysql")
	flags.String("db-dsn", "", "SQL data source name; overrides the individual database settings")
	flags.String("redis-url", "redis://localhost:6379", "Redis URL when --storage=redis")
}

// Load resolves the configuration. Precedence from highest: explicitly set
// flags, environment, config file, defaults.
func Load(cmd *cobra.Command) (*Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		// Existing environment variables win over the file
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	configFile, _ := flags.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("fnstats")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), legacy); err != nil {
			return nil, err
		}
	}

	for name, key := range flagKeys {
		if flag := flags.Lookup(name); flag != nil && flag.Changed {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("api key is required (set FNSTATS_API_KEY or API_KEY)")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.StorageType {
	case factory.StorageTypeSQL:
		switch c.Database.Driver {
		case sqldb.DriverSQLite, sqldb.DriverPostgres, sqldb.DriverMySQL:
		default:
			return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
		}
	case factory.StorageTypeMemory, factory.StorageTypeRedis:
	default:
		return fmt.Errorf("unsupported storage type %q", c.StorageType)
	}
	return nil
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Factory converts the configuration into the application wiring config
func (c *Config) Factory(logger *slog.Logger) factory.Config {
	sqlCfg := c.Database.SQL()
	redisCfg := redisstorage.Config{
		URL:          c.Redis.URL,
		PoolSize:     c.Redis.PoolSize,
		MinIdleConns: c.Redis.MinIdleConns,
	}
	return factory.Config{
		AuthConfig:  auth.Config{APIKey: c.APIKey},
		Logger:      logger,
		StorageType: c.StorageType,
		SQLConfig:   &sqlCfg,
		RedisConfig: &redisCfg,
	}
}

// SQL converts the database settings into the storage configuration
func (d DatabaseConfig) SQL() sqldb.Config {
	return sqldb.Config{
		Driver:          d.Driver,
		DSN:             d.DataSourceName(),
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
	}
}

// DataSourceName builds the driver-specific DSN
func (d DatabaseConfig) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case sqldb.DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(5432))),
			Path:   "/" + d.Name,
		}
		if d.User != "" {
			u.User = url.UserPassword(d.User, d.Password)
		}
		if d.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
		}
		return u.String()
	case sqldb.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = d.User
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.portOr(3306)))
		mc.DBName = d.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	default:
		// SQLite treats the database name as a file path
		return d.Name
	}
}

func (d DatabaseConfig) portOr(fallback int) int {
	if d.Port != 0 {
		return d.Port
	}
	return fallback
}
