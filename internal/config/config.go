// Package config loads table and server settings from an HCL file.
//
//	server {
//	  address   = "localhost"
//	  port      = 8080
//	  log_level = "info"
//	}
//
//	table "main" {
//	  small_blind    = 1
//	  big_blind      = 2
//	  starting_stack = 200
//	  seed           = 42
//	}
//
//	bot "nits" {
//	  strategy = "fold"
//	  seats    = [1, 2]
//	}
//
// Seats without a bot block play the simple strategy.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/sixmax/internal/bot"
	"github.com/lox/sixmax/internal/game"
)

// DefaultStrategy is played by seats no bot block claims.
const DefaultStrategy = "simple"

// Config is the complete configuration file.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
	Bots   []BotConfig    `hcl:"bot,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`

	// HandHistoryDir receives a PHH file per finished hand when set.
	HandHistoryDir string `hcl:"hand_history_dir,optional"`

	// BotDelayMS paces opponent actions so a client can animate them. Zero
	// plays every bot turn at once.
	BotDelayMS int `hcl:"bot_delay_ms,optional"`
}

// TableConfig defines the stakes of a table.
type TableConfig struct {
	Name          string `hcl:"name,label"`
	SmallBlind    int    `hcl:"small_blind"`
	BigBlind      int    `hcl:"big_blind"`
	Ante          int    `hcl:"ante,optional"`
	StartingStack int    `hcl:"starting_stack,optional"`
	Seed          *int64 `hcl:"seed,optional"`
	HistoryLimit  int    `hcl:"history_limit,optional"`
	CarryStacks   bool   `hcl:"carry_stacks,optional"`
}

// BotConfig assigns a strategy to opponent seats.
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Seats    []int  `hcl:"seats,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{
		Tables: []TableConfig{{Name: "main", SmallBlind: 1, BigBlind: 2}},
	}
	c.applyDefaults()
	return c
}

// Load reads filename, falling back to Default when it does not exist.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %w", diags)
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	def := game.DefaultConfig()
	for i := range c.Tables {
		if c.Tables[i].StartingStack == 0 {
			c.Tables[i].StartingStack = def.StartingStack
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if c.Server.BotDelayMS < 0 {
		return fmt.Errorf("bot delay must not be negative")
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	for _, t := range c.Tables {
		if err := t.Game().Validate(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
	}

	claimed := map[int]string{}
	for _, b := range c.Bots {
		if !slices.Contains(bot.Names(), b.Strategy) {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
		for _, seat := range b.Seats {
			if seat < 1 || seat >= game.NumSeats {
				return fmt.Errorf("bot %s: seat %d is not an opponent seat", b.Name, seat)
			}
			if other, ok := claimed[seat]; ok {
				return fmt.Errorf("bot %s: seat %d already played by %s", b.Name, seat, other)
			}
			claimed[seat] = b.Name
		}
	}
	return nil
}

// Address returns the listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Level returns the parsed log level, or info when it does not parse.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.Server.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// BotDelay returns the opponent pacing delay.
func (c *Config) BotDelay() time.Duration {
	return time.Duration(c.Server.BotDelayMS) * time.Millisecond
}

// Table returns the named table, or the first one when name is empty.
func (c *Config) Table(name string) (TableConfig, bool) {
	for _, t := range c.Tables {
		if name == "" || t.Name == name {
			return t, true
		}
	}
	return TableConfig{}, false
}

// Strategies returns the strategy of every opponent seat, indexed by seat.
// Seat 0 is the hero and is left empty.
func (c *Config) Strategies() []string {
	out := make([]string, game.NumSeats)
	for seat := 1; seat < game.NumSeats; seat++ {
		out[seat] = DefaultStrategy
	}
	for _, b := range c.Bots {
		for _, seat := range b.Seats {
			if seat > 0 && seat < game.NumSeats {
				out[seat] = b.Strategy
			}
		}
	}
	return out
}

// Game converts the table block to an engine configuration.
func (t TableConfig) Game() game.Config {
	cfg := game.DefaultConfig()
	cfg.SmallBlind = t.SmallBlind
	cfg.BigBlind = t.BigBlind
	cfg.Ante = t.Ante
	cfg.StartingStack = t.StartingStack
	cfg.HistoryLimit = t.HistoryLimit
	cfg.CarryStacks = t.CarryStacks
	if t.Seed != nil {
		cfg = cfg.WithSeed(*t.Seed)
	}
	return cfg
}
