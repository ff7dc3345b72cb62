package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
)

// Option configures an Engine during creation
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPlayerName sets the label of the human seat
func WithPlayerName(name string) Option {
	return func(e *Engine) {
		e.playerName = name
		e.labeller = TableSeats(name)
	}
}

// WithoutHumanSeat makes every seat, including seat 1, draw automatically
func WithoutHumanSeat() Option {
	return func(e *Engine) {
		e.human = false
	}
}

// WithSeatLabeller overrides how seats are named in commentary and summary
func WithSeatLabeller(labeller SeatLabeller) Option {
	return func(e *Engine) {
		if labeller != nil {
			e.labeller = labeller
		}
	}
}

// WithRand sets the source used to shuffle a deck when StartRound is given none
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.deckSource = func() []deck.Card { return deck.Shuffled(rng) }
		}
	}
}

// WithDeckSource sets the function that supplies a deck when StartRound is
// given none. The returned cards are validated like any other deck.
func WithDeckSource(source func() []deck.Card) Option {
	return func(e *Engine) {
		if source != nil {
			e.deckSource = source
		}
	}
}

// WithEventBus publishes round events to bus instead of a private one
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) {
		if bus != nil {
			e.bus = bus
		}
	}
}
