// Package config loads the shard service configuration from RPG_SHARDS_*
// environment variables.
package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-shards/internal/engine"
	"github.com/KirkDiggler/rpg-shards/internal/errors"
)

// Config is the process configuration. Command line flags override it.
type Config struct {
	GRPCPort     int    `env:"RPG_SHARDS_GRPC_PORT"      envDefault:"50051"`
	RedisAddress string `env:"RPG_SHARDS_REDIS_ADDRESS"  envDefault:"localhost:6379"`
	RedisUseTLS  bool   `env:"RPG_SHARDS_REDIS_USE_TLS"`
	LogLevel     string `env:"RPG_SHARDS_LOG_LEVEL"      envDefault:"info"`

	MaxSlots     int   `env:"RPG_SHARDS_MAX_SLOTS"     envDefault:"11"`
	CursedShards []int `env:"RPG_SHARDS_CURSED_SHARDS" envDefault:"666,13,1337" envSeparator:","`
	UseLinks     bool  `env:"RPG_SHARDS_USE_LINKS"     envDefault:"true"`

	// LinksFile holds "shardA,shardB,ability" lines; required when UseLinks is set
	LinksFile   string `env:"RPG_SHARDS_LINKS_FILE"`
	CatalogFile string `env:"RPG_SHARDS_CATALOG_FILE"`

	DefaultPartyID    string `env:"RPG_SHARDS_DEFAULT_PARTY_ID"    envDefault:"party_1"`
	MaxCommitAttempts int    `env:"RPG_SHARDS_MAX_COMMIT_ATTEMPTS" envDefault:"3"`

	// LevelUpMessage is shown when a level up grants slots; "#" becomes the count
	LevelUpMessage string `env:"RPG_SHARDS_LEVEL_UP_MESSAGE" envDefault:"Gained # shard slots!"`
}

// Load parses the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("RedisAddress", c.RedisAddress, vb)
	errors.ValidateRequired("CatalogFile", c.CatalogFile, vb)
	errors.ValidateMin("MaxSlots", c.MaxSlots, 0, vb)
	errors.ValidateMin("MaxCommitAttempts", c.MaxCommitAttempts, 1, vb)
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		vb.Field("GRPCPort", "must be between 1 and 65535")
	}
	if c.UseLinks {
		errors.ValidateRequired("LinksFile", c.LinksFile, vb)
	}
	for _, id := range c.CursedShards {
		if id <= 0 {
			vb.Field("CursedShards", "shard ids must be positive")
			break
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		vb.Field("LogLevel", err.Error())
	}

	return vb.Build()
}

// EngineSettings returns the engine's immutable settings
func (c *Config) EngineSettings() engine.Settings {
	cursed := make([]int, len(c.CursedShards))
	copy(cursed, c.CursedShards)
	return engine.Settings{
		MaxSlots:     c.MaxSlots,
		CursedShards: cursed,
	}
}

// ParseLevel maps a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", name)
	}
}
