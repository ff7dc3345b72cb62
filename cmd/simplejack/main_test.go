package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/lox/simplejack/internal/statistics"
	"github.com/lox/simplejack/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func deckTokens(t *testing.T, top ...string) []string {
	t.Helper()
	cards, err := deck.Stacked(randutil.New(1), deck.MustParseCards(top...)...)
	require.NoError(t, err)
	tokens := make([]string, len(cards))
	for i, c := range cards {
		tokens[i] = c.String()
	}
	return tokens
}

func TestRunPrintsWinner(t *testing.T) {
	cmd := &RunCmd{Players: 2, Deck: deckTokens(t, "Spades-Jack", "Hearts-2", "Spades-Ace")}

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out, quietLogger()))
	assert.Equal(t, "Winner: 1, Hand: ['Spades-Jack', 'Spades-Ace'], Value: 21\n", out.String())
}

func TestRunPrintsPush(t *testing.T) {
	cmd := &RunCmd{Players: 2, Deck: deckTokens(t, "Spades-10", "Hearts-10", "Spades-8", "Hearts-8")}

	var out bytes.Buffer
	require.NoError(t, cmd.run(&out, quietLogger()))
	assert.Equal(t, "Push\n", out.String())
}

func TestRunReadsDeckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.txt")
	tokens := deckTokens(t, "Spades-Jack", "Hearts-2", "Spades-Ace")
	content := strings.Join(tokens[:10], "\n") + "\n" + strings.Join(tokens[10:], ", ")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var out bytes.Buffer
	cmd := &RunCmd{Players: 2, DeckFile: path}
	require.NoError(t, cmd.run(&out, quietLogger()))
	assert.Contains(t, out.String(), "Winner: 1")
}

func TestRunShufflesWithSeed(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, (&RunCmd{Players: 4, Seed: 77}).run(&a, quietLogger()))
	require.NoError(t, (&RunCmd{Players: 4, Seed: 77}).run(&b, quietLogger()))
	assert.Equal(t, a.String(), b.String())
	assert.NotEmpty(t, a.String())
}

func TestRunRejectsBadInput(t *testing.T) {
	var out bytes.Buffer

	err := (&RunCmd{Players: 2, Deck: []string{"Spades-Ace"}}).run(&out, quietLogger())
	assert.ErrorIs(t, err, deck.ErrInvalidDeck)

	err = (&RunCmd{Players: 2, Deck: []string{"Spades-Ace"}, DeckFile: "deck.txt"}).run(&out, quietLogger())
	assert.ErrorContains(t, err, "mutually exclusive")

	err = (&RunCmd{Players: 7, Seed: 1}).run(&out, quietLogger())
	assert.ErrorContains(t, err, "between 2 and 6")

	assert.Empty(t, out.String())
}

func TestGlobalsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simplejack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
game {
  players       = 3
  dealing_speed = "fast"
}
`), 0o644))

	g := &Globals{Config: path, LogLevel: "DEBUG"}
	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Game.Players)
	assert.Equal(t, table.SpeedFast, cfg.Speed())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, log.DebugLevel, g.logger(cfg, io.Discard).GetLevel())

	_, err = (&Globals{Config: path, LogLevel: "loud"}).load()
	assert.Error(t, err)
}

func TestGlobalsLoadMissingFile(t *testing.T) {
	cfg, err := (&Globals{Config: filepath.Join(t.TempDir(), "absent.hcl")}).load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, log.InfoLevel, (&Globals{}).logger(cfg, io.Discard).GetLevel())
}

func TestPrintResults(t *testing.T) {
	stats := &statistics.Statistics{}
	stats.Add(statistics.RoundResult{Outcome: game.OutcomeWinner, Winner: 2, WinningScore: 21, Natural: true, CardsDealt: 5})
	stats.Add(statistics.RoundResult{Outcome: game.OutcomePush, PushReason: game.PushAllBusted, CardsDealt: 7})

	var out bytes.Buffer
	printResults(&out, stats, 3, 1500*time.Millisecond)

	text := out.String()
	assert.Contains(t, text, "=== RESULTS (2 rounds in 1.5s) ===")
	assert.Contains(t, text, "Pushes: 1 (tied 0, all busted 1)")
	assert.Contains(t, text, "Push rate: 50.00%")
	assert.Contains(t, text, "Cards per round: 6.00")
	assert.Contains(t, text, "Wins on 21: 1")
	assert.Equal(t, 3, strings.Count(text, "%  "), "one line per seat")
	assert.Contains(t, text, "50.00%  1\n")
}
