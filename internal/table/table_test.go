package table

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeLog struct {
	mu    sync.Mutex
	snaps []game.Snapshot
}

func (c *changeLog) record(s game.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, s)
}

func (c *changeLog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

func newTestTable(t *testing.T, speed Speed) (*Table, *quartz.Mock, *changeLog) {
	t.Helper()
	mClock := quartz.NewMock(t)
	changes := &changeLog{}
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	engine := game.New(game.WithPlayerName("TestUser"), game.WithLogger(logger))
	tbl := New(engine,
		WithClock(mClock),
		WithSpeed(speed),
		WithLogger(logger),
		WithOnChange(changes.record),
	)
	t.Cleanup(tbl.Close)
	return tbl, mClock, changes
}

func stacked(t *testing.T, tokens ...string) []deck.Card {
	t.Helper()
	cards, err := deck.Stacked(randutil.New(3), deck.MustParseCards(tokens...)...)
	require.NoError(t, err)
	return cards
}

// tickUntil advances the mock clock one dealing interval at a time until the
// table reaches the wanted phase
func tickUntil(t *testing.T, tbl *Table, mClock *quartz.Mock, want game.Phase) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 100; i++ {
		if tbl.Snapshot().Phase == want {
			return
		}
		mClock.Advance(tbl.Speed().Interval()).MustWait(ctx)
	}
	t.Fatalf("table never reached %s, stuck in %s", want, tbl.Snapshot().Phase)
}

func TestTableDealsOnePerInterval(t *testing.T) {
	tbl, mClock, changes := newTestTable(t, SpeedFast)
	require.NoError(t, tbl.Start(2, stacked(t, "Spades-10", "Spades-8", "Spades-2", "Hearts-4")))
	assert.Equal(t, 1, changes.count())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 1; i <= 4; i++ {
		mClock.Advance(time.Second).MustWait(ctx)
		s := tbl.Snapshot()
		dealt := len(s.Seats[0].Cards) + len(s.Seats[1].Cards)
		assert.Equal(t, i, dealt, "after %d ticks", i)
	}

	assert.Equal(t, game.PhaseAwaitingDecision, tbl.Snapshot().Phase)
	assert.Equal(t, 5, changes.count())
}

func TestTableStandFinishesRound(t *testing.T) {
	tbl, mClock, changes := newTestTable(t, SpeedNormal)
	require.NoError(t, tbl.Start(2, stacked(t, "Spades-10", "Spades-8", "Spades-2", "Hearts-4", "Clubs-4", "Spades-7")))

	tickUntil(t, tbl, mClock, game.PhaseAwaitingDecision)
	require.NoError(t, tbl.Stand())
	tickUntil(t, tbl, mClock, game.PhaseComplete)

	s := tbl.Snapshot()
	assert.Equal(t, "Winner: TestUser, Hand: ['Spades-10', 'Spades-2'], Value: 12", s.Summary)
	assert.NoError(t, tbl.Err())

	changes.mu.Lock()
	last := changes.snaps[len(changes.snaps)-1]
	changes.mu.Unlock()
	assert.Equal(t, game.PhaseComplete, last.Phase)
}

func TestTableHitDealsImmediately(t *testing.T) {
	tbl, mClock, _ := newTestTable(t, SpeedSlow)
	require.NoError(t, tbl.Start(2, stacked(t, "Spades-King", "Clubs-7", "Spades-5", "Diamonds-Jack", "Hearts-10")))

	tickUntil(t, tbl, mClock, game.PhaseAwaitingDecision)
	require.NoError(t, tbl.Hit())
	assert.Equal(t, 25, tbl.Snapshot().Seats[0].Score)

	tickUntil(t, tbl, mClock, game.PhaseComplete)
	assert.Equal(t, 2, tbl.Snapshot().Winner)
}

func TestTableRejectsDecisionWhileDealing(t *testing.T) {
	tbl, _, changes := newTestTable(t, SpeedFast)
	require.NoError(t, tbl.Start(2, nil))

	assert.ErrorIs(t, tbl.Hit(), game.ErrNotAwaitingDecision)
	assert.ErrorIs(t, tbl.Stand(), game.ErrNotAwaitingDecision)
	assert.Equal(t, 1, changes.count())
	assert.NoError(t, tbl.Err())
}

func TestTableStartValidates(t *testing.T) {
	tbl, _, changes := newTestTable(t, SpeedFast)
	assert.ErrorIs(t, tbl.Start(9, nil), game.ErrInvalidPlayerCount)
	assert.ErrorIs(t, tbl.Start(2, deck.Standard()[:3]), deck.ErrInvalidDeck)
	assert.Equal(t, 0, changes.count())
	assert.Equal(t, game.PhaseAwaitingPlayers, tbl.Snapshot().Phase)
}

func TestTableResetStopsDealing(t *testing.T) {
	tbl, mClock, _ := newTestTable(t, SpeedFast)
	require.NoError(t, tbl.Start(3, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mClock.Advance(time.Second).MustWait(ctx)

	tbl.Reset()
	s := tbl.Snapshot()
	assert.Equal(t, game.PhaseAwaitingPlayers, s.Phase)

	mClock.Advance(5 * time.Second).MustWait(ctx)
	assert.Equal(t, game.PhaseAwaitingPlayers, tbl.Snapshot().Phase)
}

func TestTableRestartDiscardsPendingDeal(t *testing.T) {
	tbl, mClock, _ := newTestTable(t, SpeedFast)
	require.NoError(t, tbl.Start(2, nil))
	require.NoError(t, tbl.Start(2, stacked(t, "Spades-Jack", "Hearts-2", "Spades-Ace")))

	tickUntil(t, tbl, mClock, game.PhaseComplete)
	s := tbl.Snapshot()
	assert.Equal(t, "Winner: TestUser, Hand: ['Spades-Jack', 'Spades-Ace'], Value: 21", s.Summary)
	assert.Equal(t, deck.Size-3, s.CardsRemaining)
}

func TestParseSpeed(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Speed
		gap  time.Duration
	}{
		{"slow", SpeedSlow, 3 * time.Second},
		{"normal", SpeedNormal, 2 * time.Second},
		{"fast", SpeedFast, time.Second},
		{"", SpeedNormal, 2 * time.Second},
	} {
		got, err := ParseSpeed(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.gap, got.Interval())
	}

	_, err := ParseSpeed("ludicrous")
	assert.Error(t, err)
}
