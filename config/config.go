package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
	Prices PricesConfig `mapstructure:"prices"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Addr returns the listen address string.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type GameConfig struct {
	Decks           int           `mapstructure:"decks"`
	ReshuffleBelow  int           `mapstructure:"reshuffle_below"`
	DealerDelay     time.Duration `mapstructure:"dealer_delay"`
	HistoryLimit    int           `mapstructure:"history_limit"`
	WagerMultiplier float64       `mapstructure:"wager_multiplier"`
	DefaultBet      float64       `mapstructure:"default_bet"`
	DefaultAsset    string        `mapstructure:"default_asset"`
}

type PricesConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
	Notifications int           `mapstructure:"notifications"` // retained notification entries
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CBJ_.
// Nested keys use underscore: CBJ_SERVER_PORT, CBJ_GAME_DECKS, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("game.decks", 6)
	v.SetDefault("game.reshuffle_below", 52)
	v.SetDefault("game.dealer_delay", "500ms")
	v.SetDefault("game.history_limit", 20)
	v.SetDefault("game.wager_multiplier", 50.0)
	v.SetDefault("game.default_bet", 0.001)
	v.SetDefault("game.default_asset", "BTC")
	v.SetDefault("prices.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("prices.poll_interval", "60s")
	v.SetDefault("prices.fetch_timeout", "10s")
	v.SetDefault("prices.notifications", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CBJ_GAME_DECKS -> game.decks
	v.SetEnvPrefix("CBJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
