package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/randutil"
)

// RunCmd deals a single round with every seat drawing automatically
type RunCmd struct {
	Players  int      `short:"p" required:"" help:"Number of players (2-6)"`
	Deck     []string `short:"d" help:"The 52 cards in deal order, e.g. Spades-Ace,Hearts-10,..."`
	DeckFile string   `short:"f" type:"existingfile" help:"File holding the deck, one token per line or separated by spaces or commas"`
	Seed     int64    `help:"Shuffle seed when no deck is given (0 for random)"`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	return c.run(os.Stdout, g.logger(cfg, os.Stderr))
}

func (c *RunCmd) run(out io.Writer, logger *log.Logger) error {
	cards, err := c.cards(logger)
	if err != nil {
		return err
	}

	summary, ok, err := game.Play(cards, c.Players, game.WithLogger(logger))
	if err != nil {
		return err
	}
	if !ok {
		_, err = fmt.Fprintln(out, "Push")
		return err
	}
	_, err = fmt.Fprintln(out, summary)
	return err
}

// cards returns the deck from the flags, or a shuffled one
func (c *RunCmd) cards(logger *log.Logger) ([]deck.Card, error) {
	tokens := c.Deck
	if c.DeckFile != "" {
		if len(tokens) > 0 {
			return nil, fmt.Errorf("--deck and --deck-file are mutually exclusive")
		}
		data, err := os.ReadFile(c.DeckFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read deck file: %w", err)
		}
		tokens = splitTokens(string(data))
	}

	if len(tokens) == 0 {
		seed := randutil.Seed(c.Seed)
		logger.Info("Shuffling deck", "seed", seed)
		return deck.Shuffled(randutil.New(seed)), nil
	}
	return deck.ParseDeck(tokens)
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}
