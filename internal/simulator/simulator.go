package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/lox/simplejack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Players int
	Seed    int64 // 0 picks a seed from the clock
	Workers int   // 0 uses one worker per CPU
	// StandAt gives seat 1 a human-style strategy that hits below this
	// score. Zero plays seat 1 like every other seat.
	StandAt int
	Logger  *log.Logger
}

// Simulator plays many independent rounds over freshly shuffled decks
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Workers > config.Rounds && config.Rounds > 0 {
		config.Workers = config.Rounds
	}
	config.Seed = randutil.Seed(config.Seed)
	return &Simulator{config: config}
}

// Seed returns the seed the run uses, so it can be replayed
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run executes the simulation. Results are identical for the same seed,
// worker count and strategy.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	cfg := s.config
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	if err := game.ValidatePlayerCount(cfg.Players); err != nil {
		return nil, err
	}

	cfg.Logger.Info("Starting simulation",
		"rounds", cfg.Rounds,
		"players", cfg.Players,
		"workers", cfg.Workers,
		"seed", cfg.Seed)

	perWorker := cfg.Rounds / cfg.Workers
	remainder := cfg.Rounds % cfg.Workers
	seeds := randutil.Derive(cfg.Seed, cfg.Workers)
	results := make([]*statistics.Statistics, cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		g.Go(func() error {
			stats, err := s.runWorker(ctx, seeds[w], rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	cfg.Logger.Info("Simulation complete",
		"rounds", total.Rounds,
		"push_rate", fmt.Sprintf("%.3f", total.PushRate()),
		"mean_winning_score", fmt.Sprintf("%.2f", total.Mean()))
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	opts := []game.Option{
		game.WithRand(randutil.New(seed)),
		game.WithLogger(s.config.Logger),
	}
	decide := game.DecideFunc(nil)
	if s.config.StandAt > 0 {
		decide = game.StandAt(s.config.StandAt)
	} else {
		opts = append(opts, game.WithoutHumanSeat())
	}
	engine := game.New(opts...)

	stats := &statistics.Statistics{}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := engine.StartRound(s.config.Players, nil); err != nil {
			return nil, err
		}
		if err := engine.RunToCompletion(decide); err != nil {
			return nil, err
		}
		stats.Add(statistics.ResultFromSnapshot(engine.Snapshot()))
	}
	return stats, nil
}

// RunSimulation is a convenience wrapper around New(...).Run
func RunSimulation(ctx context.Context, rounds, players int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{Rounds: rounds, Players: players, Seed: seed, Logger: logger}).Run(ctx)
}
