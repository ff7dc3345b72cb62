package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/simplejack/internal/fileutil"
	"github.com/lox/simplejack/internal/simulator"
	"github.com/lox/simplejack/internal/statistics"
)

// SimulateCmd plays many automatic rounds and prints the tallies
type SimulateCmd struct {
	Rounds  int    `default:"10000" help:"Number of rounds to play"`
	Players int    `short:"p" help:"Number of players, 2-6 (overrides config)"`
	Seed    int64  `help:"RNG seed (0 for random, overrides config)"`
	Workers int    `short:"w" help:"Parallel workers (0 for one per CPU)"`
	StandAt int    `help:"Let seat 1 keep hitting below this score instead of the house rule"`
	Output  string `short:"o" help:"Also write the results as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := g.logger(cfg, os.Stderr)

	players := cfg.Game.Players
	if c.Players != 0 {
		players = c.Players
	}
	seed := cfg.Game.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Players: players,
		Seed:    seed,
		Workers: c.Workers,
		StandAt: c.StandAt,
		Logger:  logger,
	})

	fmt.Printf("Starting simulation: %d rounds, %d players (seed: %d)\n", c.Rounds, players, sim.Seed())
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printResults(os.Stdout, stats, players, time.Since(start))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, stats.Report(sim.Seed(), players)); err != nil {
			return err
		}
		logger.Info("Wrote results", "path", c.Output)
	}
	return nil
}

func printResults(w io.Writer, stats *statistics.Statistics, players int, duration time.Duration) {
	fmt.Fprintf(w, "\n=== RESULTS (%d rounds in %s) ===\n", stats.Rounds, duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Wins: %d  Pushes: %d (tied %d, all busted %d)  Aborted: %d\n",
		stats.Wins, stats.Pushes, stats.Ties, stats.AllBusted, stats.Aborted)
	fmt.Fprintf(w, "Push rate: %.2f%%\n", stats.PushRate()*100)
	fmt.Fprintf(w, "Cards per round: %.2f\n", stats.CardsPerRound())

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(w, "Winning score: %.2f ± %.2f SE (95%% CI [%.2f, %.2f]), median %.0f\n",
		stats.Mean(), stats.StdError(), low, high, stats.Median())
	fmt.Fprintf(w, "Wins on 21: %d\n", stats.Naturals)

	fmt.Fprintf(w, "\nSeat  Wins    Rate     On 21\n")
	for seat := 1; seat <= players; seat++ {
		s := stats.SeatResults[seat]
		fmt.Fprintf(w, "%-5d %-7d %6.2f%%  %d\n", seat, s.Wins, stats.WinRate(seat)*100, s.Naturals)
	}
}
