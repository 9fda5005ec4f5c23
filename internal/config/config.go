// Package config loads the application configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/peterkuimelis/cardclash/internal/game"
)

// Config represents the application configuration.
type Config struct {
	Battle  BattleConfig  `toml:"battle"`
	Catalog CatalogConfig `toml:"catalog"`
	Decks   DecksConfig   `toml:"decks"`
	History HistoryConfig `toml:"history"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// BattleConfig holds the battle rules.
type BattleConfig struct {
	MaxTurns       int `toml:"max_turns"`
	StartingMana   int `toml:"starting_mana"`
	ManaRegen      int `toml:"mana_regen"`
	ManaCap        int `toml:"mana_cap"`
	StartingHealth int `toml:"starting_health"`
	WinTrophies    int `toml:"win_trophies"`
	WinGold        int `toml:"win_gold"`
	LoseTrophies   int `toml:"lose_trophies"`
	LoseGold       int `toml:"lose_gold"`
}

// CatalogConfig locates the card definitions.
type CatalogConfig struct {
	Path  string `toml:"path"`  // .json/.yaml; missing file uses the built-in catalog
	Watch bool   `toml:"watch"` // reload on change (web server)
}

// DecksConfig locates the deck file.
type DecksConfig struct {
	Path string `toml:"path"`
}

// HistoryConfig selects the battle history backend.
type HistoryConfig struct {
	Driver string `toml:"driver"` // "memory" or "sqlite"
	Path   string `toml:"path"`   // sqlite database file
}

// ServerConfig holds the web server settings.
type ServerConfig struct {
	Addr             string  `toml:"addr"`
	BattlesPerSecond float64 `toml:"battles_per_second"`
	Burst            int     `toml:"burst"`
}

// LogConfig holds the operational logger settings.
type LogConfig struct {
	Level       string `toml:"level"` // debug, info, warn, error
	Development bool   `toml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	r := game.DefaultRules()
	return &Config{
		Battle: BattleConfig{
			MaxTurns:       r.MaxTurns,
			StartingMana:   r.StartingMana,
			ManaRegen:      r.ManaRegen,
			ManaCap:        r.ManaCap,
			StartingHealth: r.StartingHealth,
			WinTrophies:    r.WinTrophies,
			WinGold:        r.WinGold,
			LoseTrophies:   r.LoseTrophies,
			LoseGold:       r.LoseGold,
		},
		Catalog: CatalogConfig{
			Path:  "cards.json",
			Watch: false,
		},
		Decks: DecksConfig{
			Path: "decks.yaml",
		},
		History: HistoryConfig{
			Driver: "sqlite",
			Path:   "data/history.db",
		},
		Server: ServerConfig{
			Addr:             ":8080",
			BattlesPerSecond: 5,
			Burst:            10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	b := c.Battle
	if b.MaxTurns < 1 {
		return fmt.Errorf("max turns must be positive: %d", b.MaxTurns)
	}
	if b.StartingMana < 0 || b.ManaRegen < 0 {
		return fmt.Errorf("mana settings cannot be negative")
	}
	if b.ManaCap < b.StartingMana {
		return fmt.Errorf("mana cap %d is below starting mana %d", b.ManaCap, b.StartingMana)
	}
	if b.StartingHealth < 1 {
		return fmt.Errorf("starting health must be positive: %d", b.StartingHealth)
	}

	switch c.History.Driver {
	case "memory":
	case "sqlite":
		if c.History.Path == "" {
			return fmt.Errorf("sqlite history needs a path")
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}

	if c.Server.BattlesPerSecond < 0 {
		return fmt.Errorf("battles per second cannot be negative: %v", c.Server.BattlesPerSecond)
	}
	if c.Server.Burst < 0 {
		return fmt.Errorf("burst cannot be negative: %d", c.Server.Burst)
	}
	return nil
}

// Rules converts the battle section to engine rules.
func (c *Config) Rules() game.Rules {
	b := c.Battle
	return game.Rules{
		MaxTurns:       b.MaxTurns,
		StartingMana:   b.StartingMana,
		ManaRegen:      b.ManaRegen,
		ManaCap:        b.ManaCap,
		StartingHealth: b.StartingHealth,
		WinTrophies:    b.WinTrophies,
		WinGold:        b.WinGold,
		LoseTrophies:   b.LoseTrophies,
		LoseGold:       b.LoseGold,
	}
}
