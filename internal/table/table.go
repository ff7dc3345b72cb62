// Package table deals a game.Engine round on a clock. It is the
// concurrency boundary between the single-threaded engine and shells that
// drive it from several goroutines.
package table

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/game"
)

// ChangeFunc receives a snapshot after every state change. It is called with
// the table lock held and must not call back into the Table.
type ChangeFunc func(game.Snapshot)

// Table schedules automatic engine steps at the dealing speed and serialises
// hit, stand and reset requests against them.
type Table struct {
	mu       sync.Mutex
	engine   *game.Engine
	clock    quartz.Clock
	speed    Speed
	logger   *log.Logger
	onChange ChangeFunc

	timer *quartz.Timer
	gen   uint64
	err   error
}

// Option configures a Table
type Option func(*Table)

// WithClock sets the clock used to schedule deals
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// WithSpeed sets the dealing speed
func WithSpeed(speed Speed) Option {
	return func(t *Table) { t.speed = speed }
}

// WithLogger sets the table logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) { t.logger = logger }
}

// WithOnChange registers the change callback
func WithOnChange(fn ChangeFunc) Option {
	return func(t *Table) { t.onChange = fn }
}

// New wraps engine. The table owns the engine from now on.
func New(engine *game.Engine, opts ...Option) *Table {
	t := &Table{
		engine: engine,
		clock:  quartz.NewReal(),
		speed:  SpeedNormal,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Speed returns the dealing speed
func (t *Table) Speed() Speed {
	return t.speed
}

// Start begins a new round, discarding any round in progress. The first
// card is dealt one interval later.
func (t *Table) Start(players int, cards []deck.Card) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.engine.StartRound(players, cards); err != nil {
		return err
	}
	t.err = nil
	t.logger.Info("Round started", "players", players, "speed", t.speed)
	t.schedule()
	t.changed()
	return nil
}

// Hit deals to the human seat. game.ErrNotAwaitingDecision is returned, and
// nothing changes, when the engine is not paused.
func (t *Table) Hit() error {
	return t.decide(t.engine.Hit)
}

// Stand stands the human seat. game.ErrNotAwaitingDecision is returned, and
// nothing changes, when the engine is not paused.
func (t *Table) Stand() error {
	return t.decide(t.engine.Stand)
}

func (t *Table) decide(apply func() error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := apply(); err != nil {
		if errors.Is(err, game.ErrNotAwaitingDecision) {
			return err
		}
		t.fail(err)
		t.changed()
		return err
	}
	t.schedule()
	t.changed()
	return nil
}

// Reset stops dealing and returns the engine to awaiting players
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stop()
	t.err = nil
	t.engine.Reset()
	t.changed()
}

// Close stops any pending deal
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stop()
}

// Snapshot returns the current round state
func (t *Table) Snapshot() game.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Snapshot()
}

// Err returns the error that aborted the current round, if any
func (t *Table) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// schedule arms the next automatic step if the engine has work to do.
// Callers hold t.mu.
func (t *Table) schedule() {
	t.stop()
	phase := t.engine.Phase()
	if phase != game.PhaseDealing && phase != game.PhaseResolving {
		return
	}
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.speed.Interval(), func() { t.tick(gen) }, "table", "deal")
}

// stop cancels the pending step. Callers hold t.mu.
func (t *Table) stop() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Table) tick(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// superseded by a decision, reset or new round
	if gen != t.gen {
		return
	}
	t.timer = nil

	if err := t.engine.Advance(); err != nil {
		t.fail(err)
	} else {
		t.schedule()
	}
	t.changed()
}

func (t *Table) fail(err error) {
	t.err = err
	t.logger.Error("Round aborted", "error", err)
}

func (t *Table) changed() {
	snap := t.engine.Snapshot()
	if snap.Phase == game.PhaseComplete {
		t.logger.Info("Round complete", "outcome", snap.Outcome.Kind, "summary", snap.Summary, "push", snap.PushMessage)
	}
	if t.onChange != nil {
		t.onChange(snap)
	}
}
