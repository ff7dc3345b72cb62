package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/simplejack/internal/server"
	"golang.org/x/sync/errgroup"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr string `short:"a" help:"Address to bind to, host:port (overrides config)"`
	Seed int64  `help:"Deterministic shuffle seed for the server (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger := g.logger(cfg, os.Stderr)

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}
	seed := cfg.Game.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}

	srv := server.NewServer(addr, logger,
		server.WithDefaults(server.Defaults{
			Players:    cfg.Game.Players,
			PlayerName: cfg.Game.PlayerName,
			Speed:      cfg.Speed(),
		}),
		server.WithSeed(seed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Start)
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
