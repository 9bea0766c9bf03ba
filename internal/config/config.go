package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-streak-engine/internal/logger"
)

// Store backends selectable through STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port string

	StoreDriver string
	SQLitePath  string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Redis    cache.RedisConfig
	CacheTTL time.Duration

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RateLimit  int
	RateWindow time.Duration

	Log      logger.Config
	Location *time.Location
}

// Load reads the optional .env files first; real environment variables win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, so tests do not need to
// touch the process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:        get("PORT", "8080"),
		StoreDriver: strings.ToLower(get("STORE_DRIVER", StorePostgres)),
		SQLitePath:  get("SQLITE_PATH", defaultSQLitePath()),
		DBDriver:    get("DB_DRIVER", repository.DriverPgx),
		DBHost:      get("DB_HOST", "localhost"),
		DBPort:      get("DB_PORT", "5432"),
		DBUser:      get("DB_USER", "kanso_user"),
		DBPassword:  get("DB_PASSWORD", "secret"),
		DBName:      get("DB_NAME", "kanso_db"),
		Redis: cache.RedisConfig{
			Host:     get("REDIS_HOST", ""),
			Port:     get("REDIS_PORT", "6379"),
			Password: get("REDIS_PASSWORD", ""),
		},
		JWTSecret: getenv("JWT_SECRET"),
		JWTIssuer: get("JWT_ISSUER", "kanso-streak-engine"),
		Log: logger.Config{
			Level: get("LOG_LEVEL", "info"),
			File:  getenv("LOG_FILE"),
		},
	}

	var err error
	if cfg.Redis.DB, err = atoi("REDIS_DB", get("REDIS_DB", "0")); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = atoi("RATE_LIMIT", get("RATE_LIMIT", "100")); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = duration("CACHE_TTL", get("CACHE_TTL", "30m")); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = duration("TOKEN_TTL", get("TOKEN_TTL", "24h")); err != nil {
		return nil, err
	}
	if cfg.RateWindow, err = duration("RATE_WINDOW", get("RATE_WINDOW", "1m")); err != nil {
		return nil, err
	}

	tz := get("TIMEZONE", "Local")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("config: TIMEZONE %q: %w", tz, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == StorePostgres && c.DBDriver != repository.DriverPgx && c.DBDriver != repository.DriverPq {
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: RATE_LIMIT must not be negative")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Database returns the driver and DSN for the selected SQL backend. The
// memory store has no database and reports ok=false.
func (c *Config) Database() (repository.DatabaseConfig, bool) {
	switch c.StoreDriver {
	case StoreSQLite:
		return repository.DatabaseConfig{Driver: repository.DriverSQLite, DSN: c.SQLitePath}, true
	case StorePostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.DBUser, c.DBPassword),
			Host:     c.DBHost + ":" + c.DBPort,
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=disable",
		}
		return repository.DatabaseConfig{Driver: c.DBDriver, DSN: u.String()}, true
	default:
		return repository.DatabaseConfig{}, false
	}
}

// RedisEnabled reports whether a cache and rate limiter should be wired.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kanso.db"
	}
	return dir + string(os.PathSeparator) + "kanso" + string(os.PathSeparator) + "kanso.db"
}

func atoi(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s %q is not a number", key, v)
	}
	return n, nil
}

func duration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s %q is not a duration", key, v)
	}
	return d, nil
}
