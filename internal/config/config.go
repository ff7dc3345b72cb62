// Package config loads the HCL configuration shared by the CLI, the terminal
// UI and the websocket server.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/table"
)

const (
	DefaultPlayers  = 4
	DefaultAddress  = "localhost"
	DefaultPort     = 8080
	DefaultLogLevel = "info"
)

// Config represents the complete configuration file. Both blocks are
// optional and filled with defaults when absent.
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// GameSettings controls how rounds are dealt
type GameSettings struct {
	Players      int    `hcl:"players,optional"`
	PlayerName   string `hcl:"player_name,optional"`
	DealingSpeed string `hcl:"dealing_speed,optional"`
	Seed         int64  `hcl:"seed,optional"`
}

// ServerSettings contains websocket server configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse reads configuration from HCL source. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.Players == 0 {
		c.Game.Players = DefaultPlayers
	}
	if c.Game.DealingSpeed == "" {
		c.Game.DealingSpeed = string(table.SpeedNormal)
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := game.ValidatePlayerCount(c.Game.Players); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := table.ParseSpeed(c.Game.DealingSpeed); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: invalid port: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server: invalid log level %q", c.Server.LogLevel)
	}
	return nil
}

// Speed returns the configured dealing speed, falling back to normal
func (c *Config) Speed() table.Speed {
	speed, err := table.ParseSpeed(c.Game.DealingSpeed)
	if err != nil {
		return table.SpeedNormal
	}
	return speed
}

// ServerAddress returns the host:port the server listens on
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
