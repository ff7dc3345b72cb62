package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/lox/simplejack/internal/table"
	"github.com/lox/simplejack/internal/tui"
)

// PlayCmd runs the interactive terminal table
type PlayCmd struct {
	Players int    `short:"p" help:"Number of players, 2-6 (overrides config)"`
	Name    string `short:"n" help:"Your name at the table (overrides config)"`
	Speed   string `short:"s" help:"Dealing speed: slow, normal or fast (overrides config)"`
	Seed    int64  `help:"Shuffle seed (0 for random, overrides config)"`
	LogFile string `help:"Write logs to this file while the table is open"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	players := cfg.Game.Players
	if c.Players != 0 {
		players = c.Players
	}
	name := cfg.Game.PlayerName
	if c.Name != "" {
		name = c.Name
	}
	speed := cfg.Speed()
	if c.Speed != "" {
		if speed, err = table.ParseSpeed(c.Speed); err != nil {
			return err
		}
	}
	seed := cfg.Game.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	seed = randutil.Seed(seed)

	// The table owns the terminal, so logs go to a file or nowhere
	var w io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	logger := g.logger(cfg, w)
	logger.Info("Starting table", "players", players, "name", name, "speed", speed, "seed", seed)

	engine := game.New(
		game.WithPlayerName(name),
		game.WithRand(randutil.New(seed)),
		game.WithLogger(logger),
	)
	engine.Subscribe(game.NewLogSubscriber(logger))

	model := tui.NewModel(engine,
		tui.WithPlayers(players),
		tui.WithSpeed(speed),
		tui.WithLogger(logger),
	)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running table: %w", err)
	}
	return nil
}
