package config

import "time"

// Token store backends understood by the CLI.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the SessionKeeper CLI.
//
// Fields:
//   - ServerBaseURL: API root the gateway prefixes to every path.
//   - StoreBackend: where the session token is persisted (sqlite|file|redis|memory).
//   - DatabasePath: SQLite file used by the sqlite backend.
//   - TokenFilePath: token file used by the file backend.
//   - RedisAddr: host:port used by the redis backend.
//   - RequestTimeout: upper bound for a single gateway call.
//   - ProfileStaleTime: how long a fetched profile is served without refetching.
//   - LogLevel: debug|info|warn|error.
type Config struct {
	ServerBaseURL    string
	StoreBackend     string
	DatabasePath     string
	TokenFilePath    string
	RedisAddr        string
	RequestTimeout   time.Duration
	ProfileStaleTime time.Duration
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/api/v1"
	c.StoreBackend = StoreSQLite
	c.DatabasePath = "session.db"
	c.TokenFilePath = "session.token"
	c.RedisAddr = "127.0.0.1:6379"
	c.RequestTimeout = 10 * time.Second
	c.ProfileStaleTime = 5 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
