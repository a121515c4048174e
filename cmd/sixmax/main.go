package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/sixmax/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"sixmax.hcl" env:"SIXMAX_CONFIG" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" env:"SIXMAX_LOG_LEVEL" help:"Log level (overrides config)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play the hero seat in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve tables over WebSocket"`
	Eval     EvalCmd          `cmd:"" help:"Name the best five card hand"`
	Analyze  AnalyzeCmd       `cmd:"" help:"Analyze hole cards against a board"`
	Replay   ReplayCmd        `cmd:"" help:"Print a PHH hand history file"`
	Simulate SimulateCmd      `cmd:"" help:"Measure a strategy over bot-only hands"`
}

func main() {
	// A .env file in the working directory may set SIXMAX_* variables.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sixmax"),
		kong.Description("Six-handed no-limit hold'em against bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the configuration file and applies flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", g.Config, err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

func stderrLogger(level log.Level) *log.Logger {
	return newLogger(os.Stderr, level)
}
