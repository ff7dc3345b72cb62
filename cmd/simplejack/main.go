package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/config"
	"github.com/lox/simplejack/internal/tui"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every command
type Globals struct {
	Config   string `short:"c" default:"simplejack.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
	NoColor  bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play at an interactive table"`
	Run      RunCmd           `cmd:"" help:"Deal one round with no human seat and print the winner"`
	Simulate SimulateCmd      `cmd:"" help:"Play many rounds and report statistics"`
	Serve    ServeCmd         `cmd:"" help:"Serve rounds over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("simplejack"),
		kong.Description("A dealer-less game of twenty-one"),
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

// load reads the configuration file and applies the global overrides
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = strings.ToLower(g.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if g.NoColor {
		tui.DisableColor()
	}
	return cfg, nil
}

// logger builds the command logger at the configured level
func (g *Globals) logger(cfg *config.Config, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
