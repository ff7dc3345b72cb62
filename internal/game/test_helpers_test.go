package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/stretchr/testify/require"
)

// stackedDeck returns a valid 52-card deck with tokens dealt first
func stackedDeck(t *testing.T, tokens ...string) []deck.Card {
	t.Helper()
	cards, err := deck.Stacked(randutil.New(11), deck.MustParseCards(tokens...)...)
	require.NoError(t, err)
	return cards
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// newTestEngine starts a round for "TestUser" with the stacked deck
func newTestEngine(t *testing.T, players int, tokens ...string) *Engine {
	t.Helper()
	e := New(WithPlayerName("TestUser"), WithLogger(quietLogger()))
	require.NoError(t, e.StartRound(players, stackedDeck(t, tokens...)))
	return e
}

// advanceUntil steps the engine until the phase is one of want
func advanceUntil(t *testing.T, e *Engine, want ...Phase) {
	t.Helper()
	for i := 0; i < 200; i++ {
		for _, p := range want {
			if e.Phase() == p {
				return
			}
		}
		require.NoError(t, e.Advance())
	}
	t.Fatalf("engine stuck in phase %s", e.Phase())
}
