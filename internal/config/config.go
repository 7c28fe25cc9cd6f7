// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"slot-machine-bot/internal/paytable"
)

// Config holds all application configuration.
type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

// BotConfig holds Telegram bot configuration.
type BotConfig struct {
	Token string `mapstructure:"token"`
	// Simulation short-circuits every play to a non-persisting no-op so
	// the matching and formatting paths can be exercised against a live
	// chat without touching real balances.
	Simulation bool `mapstructure:"simulation"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// GameConfig holds the slot machine settings.
type GameConfig struct {
	BetCents         int64                 `mapstructure:"bet_cents"`
	LeaderboardLimit int                   `mapstructure:"leaderboard_limit"`
	Paytable         []paytable.EntryConfig `mapstructure:"paytable"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variables use underscore separator and uppercase,
	// e.g. BOT_TOKEN, DATABASE_HOST, GAME_BET_CENTS.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we can use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. The default paytable
// matches the table the bot has always shipped with.
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "gambler")
	v.SetDefault("database.name", "gambler")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Game defaults
	v.SetDefault("game.bet_cents", 25)
	v.SetDefault("game.leaderboard_limit", 10)
	v.SetDefault("game.paytable", DefaultPaytable())
}

// DefaultPaytable returns the built-in payout table: the four triples
// ordered before the wildcard double-bar consolation entry, since
// resolution is first-match-wins.
func DefaultPaytable() []map[string]any {
	return []map[string]any{
		{"combo": []string{"SEVEN", "SEVEN", "SEVEN"}, "payout_mult": 80},
		{"combo": []string{"BAR", "BAR", "BAR"}, "payout_mult": 40},
		{"combo": []string{"LEMON", "LEMON", "LEMON"}, "payout_mult": 10},
		{"combo": []string{"GRAPE", "GRAPE", "GRAPE"}, "payout_mult": 10},
		{"combo": []string{"BAR", "BAR", "ANY"}, "payout_mult": 1},
	}
}
