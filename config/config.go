package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/automoto/teerace/shared/gamecore"
	"github.com/pelletier/go-toml"
)

// ErrInvalidTickRate is returned for configs with a non-positive tick rate.
var ErrInvalidTickRate = errors.New("tick rate must be positive")

// GameMode selects the rule set of a server.
type GameMode string

const (
	ModeDeathmatch GameMode = "dm"
	ModeRace       GameMode = "race"
	ModeHPRace     GameMode = "hprace"
)

// ServerConfig contains process and network settings.
type ServerConfig struct {
	Name       string   `toml:"name"`
	Port       uint     `toml:"port"`
	TickRate   int      `toml:"tick_rate"`
	Mode       GameMode `toml:"mode"`
	Map        string   `toml:"map"`
	MapsDir    string   `toml:"maps_dir"`
	MasterURL  string   `toml:"master_url"`
	Address    string   `toml:"address"`
	Region     string   `toml:"region"`
	MaxPlayers int      `toml:"max_players"`
	Version    string   `toml:"version"`
	LogLevel   string   `toml:"log_level"`
	SentryDSN  string   `toml:"sentry_dsn"`
}

// GameConfig contains rules shared by every mode.
type GameConfig struct {
	TeamDamage         bool `toml:"team_damage"`
	StrictSpectateMode bool `toml:"strict_spectate_mode"`
	// Teams splits players into red and blue instead of free-for-all.
	Teams bool `toml:"teams"`
}

// RaceConfig contains the race mode switches.
type RaceConfig struct {
	Teleport bool `toml:"teleport"`
	// Strip takes every weapon but the hammer away on teleport.
	Strip            bool `toml:"strip"`
	SpeedupMult      int  `toml:"speedup_mult"`
	SpeedupAdd       int  `toml:"speedup_add"`
	JumperAdd        int  `toml:"jumper_add"`
	Regen            int  `toml:"regen"`
	RocketJumpDamage bool `toml:"rocket_jump_damage"`
	InfiniteAmmo     bool `toml:"infinite_ammo"`
	HammerPower      int  `toml:"hammer_power"`
}

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig    `toml:"server"`
	Game    GameConfig      `toml:"game"`
	Race    RaceConfig      `toml:"race"`
	Tuning  gamecore.Tuning `toml:"tuning"`
	Weapons WeaponsConfig   `toml:"weapons"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:       "Teerace Server",
			Port:       8303,
			TickRate:   50,
			Mode:       ModeRace,
			Map:        "run_blue",
			MapsDir:    "maps",
			Region:     "eu",
			MaxPlayers: 16,
			LogLevel:   "info",
		},
		Race: RaceConfig{
			Teleport:    true,
			SpeedupMult: 10,
			SpeedupAdd:  5,
			JumperAdd:   12,
			HammerPower: 1,
		},
		Tuning:  gamecore.DefaultTuning(),
		Weapons: DefaultWeapons(),
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Server.TickRate <= 0 {
		return ErrInvalidTickRate
	}
	switch c.Server.Mode {
	case ModeDeathmatch, ModeRace, ModeHPRace:
	default:
		return fmt.Errorf("unknown game mode %q", c.Server.Mode)
	}
	return nil
}

// SaveDefault writes the default configuration to path unless a file exists.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New("config file already exists")
	}
	data, err := toml.Marshal(*Default())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
