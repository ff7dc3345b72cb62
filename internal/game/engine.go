package game

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/evaluator"
	"github.com/lox/simplejack/internal/randutil"
)

// Engine runs one round at a time. It is not safe for concurrent use; wrap
// it in a table.Table when several goroutines drive it.
type Engine struct {
	logger     *log.Logger
	bus        EventBus
	playerName string
	human      bool
	labeller   SeatLabeller
	deckSource func() []deck.Card

	phase       Phase
	deck        *deck.Deck
	hands       []*Hand
	current     int
	dealtInPass int
	commentary  []string
	gameOver    bool
	highScore   int
	outcome     Outcome
	pushMessage string
	summary     string
	announced   bool
}

// New creates an engine waiting for StartRound
func New(opts ...Option) *Engine {
	rng := randutil.New(randutil.Seed(0))
	e := &Engine{
		logger:     log.New(io.Discard),
		bus:        NewEventBus(),
		human:      true,
		labeller:   TableSeats(""),
		deckSource: func() []deck.Card { return deck.Shuffled(rng) },
		phase:      PhaseAwaitingPlayers,
		outcome:    Outcome{Kind: OutcomeNone},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers a subscriber on the engine's event bus
func (e *Engine) Subscribe(subscriber EventSubscriber) {
	e.bus.Subscribe(subscriber)
}

// Phase returns the current lifecycle phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// PlayerName returns the configured human seat name, which may be empty
func (e *Engine) PlayerName() string {
	return e.playerName
}

// Players returns the seat count of the current round, or 0 before StartRound
func (e *Engine) Players() int {
	return len(e.hands)
}

// DisplayName returns the label for a 1-based seat in the current round
func (e *Engine) DisplayName(seat int) string {
	return e.labeller(seat, len(e.hands))
}

// StartRound validates the inputs and deals a fresh round. A nil deck is
// replaced by one from the engine's deck source. Nothing changes on error.
func (e *Engine) StartRound(players int, cards []deck.Card) error {
	if err := ValidatePlayerCount(players); err != nil {
		return err
	}
	if cards == nil {
		cards = e.deckSource()
	}
	if err := deck.ValidateDeck(cards); err != nil {
		return err
	}

	e.clear()
	e.deck = deck.New(cards)
	e.hands = make([]*Hand, players)
	labels := make([]string, players)
	for i := range e.hands {
		e.hands[i] = newHand(i + 1)
		labels[i] = e.DisplayName(i + 1)
	}
	e.phase = PhaseDealing

	e.logger.Debug("Starting round", "players", players, "human", e.human)
	e.bus.Publish(RoundStartEvent{Players: players, Labels: labels, timestamp: time.Now()})
	return nil
}

// Reset discards the round and returns to PhaseAwaitingPlayers. Options
// such as the player name are kept.
func (e *Engine) Reset() {
	e.clear()
	e.phase = PhaseAwaitingPlayers
}

func (e *Engine) clear() {
	e.deck = nil
	e.hands = nil
	e.current = 0
	e.dealtInPass = 0
	e.commentary = nil
	e.gameOver = false
	e.highScore = 0
	e.outcome = Outcome{Kind: OutcomeNone}
	e.pushMessage = ""
	e.summary = ""
	e.announced = false
}

// Advance performs one step of the round: a deal to the current seat, a
// move past a seat that cannot draw, or resolution of a finished round.
// It does nothing while the human seat is waiting for a decision or once
// the round is complete. An invalid card aborts the round and is returned.
func (e *Engine) Advance() error {
	switch e.phase {
	case PhaseAwaitingPlayers:
		return ErrRoundNotStarted
	case PhaseComplete, PhaseAwaitingDecision:
		return nil
	case PhaseResolving:
		e.resolve()
		return nil
	}

	hand := e.hands[e.current]
	if evaluator.MustDraw(hand.Score) && !hand.Stood {
		if err := e.deal(e.current); err != nil {
			return err
		}
	} else {
		e.pass()
	}

	e.settle()
	return nil
}

// Hit deals one card to the human seat. It returns ErrNotAwaitingDecision
// and changes nothing unless the engine is paused for the human.
func (e *Engine) Hit() error {
	if e.phase != PhaseAwaitingDecision {
		return ErrNotAwaitingDecision
	}
	if err := e.deal(0); err != nil {
		return err
	}
	e.settle()
	return nil
}

// Stand marks the human seat as stood and moves play to the next seat. It
// returns ErrNotAwaitingDecision and changes nothing unless the engine is
// paused for the human.
func (e *Engine) Stand() error {
	if e.phase != PhaseAwaitingDecision {
		return ErrNotAwaitingDecision
	}

	hand := e.hands[0]
	hand.Stood = true
	name := e.DisplayName(hand.Seat)
	e.say(standLine(name, hand.Score))
	e.bus.Publish(SeatStoodEvent{Seat: hand.Seat, Label: name, Score: hand.Score, timestamp: time.Now()})

	e.current = e.nextSeat()
	if e.current == 0 {
		e.dealtInPass = 0
	}
	e.settle()
	return nil
}

// deal draws the top card for the seat at index i and applies the result
func (e *Engine) deal(i int) error {
	card, ok := e.deck.Draw()
	if !ok {
		e.say(deckEmptyMessage)
		e.gameOver = true
		return nil
	}

	hand := e.hands[i]
	name := e.DisplayName(hand.Seat)
	if _, err := deck.ValidateCard(card); err != nil {
		e.abort()
		return fmt.Errorf("dealing to %s: %w", name, err)
	}

	hand.add(card)
	e.say(drawLine(name, card))
	e.bus.Publish(CardDealtEvent{Seat: hand.Seat, Label: name, Card: card, Score: hand.Score, timestamp: time.Now()})

	switch {
	case evaluator.IsTarget(hand.Score):
		e.say(hitTargetLine(name))
		e.highScore = hand.Score
		e.gameOver = true
		e.win(hand)
		return nil
	case evaluator.IsBust(hand.Score):
		e.say(bustLine(name, hand.Score))
		e.bus.Publish(SeatBustedEvent{Seat: hand.Seat, Label: name, Score: hand.Score, timestamp: time.Now()})
	default:
		e.highScore = max(e.highScore, hand.Score)
	}

	e.current = e.nextSeat()
	if e.current == 0 {
		e.dealtInPass = 0
	} else {
		e.dealtInPass++
	}
	return nil
}

// pass moves past a seat that will not draw. Wrapping to the first seat
// after a pass with no deals ends the round.
func (e *Engine) pass() {
	next := e.nextSeat()
	if next == 0 {
		if e.dealtInPass == 0 {
			e.gameOver = true
			return
		}
		e.dealtInPass = 0
	}
	e.current = next
}

func (e *Engine) nextSeat() int {
	return (e.current + 1) % len(e.hands)
}

// settle recomputes the phase after a state change
func (e *Engine) settle() {
	switch {
	case e.outcome.Resolved():
		e.phase = PhaseComplete
	case e.gameOver:
		e.phase = PhaseResolving
	case e.paused():
		e.phase = PhaseAwaitingDecision
		if !e.announced {
			e.announced = true
			e.bus.Publish(DecisionRequiredEvent{Seat: 1, Score: e.hands[0].Score, timestamp: time.Now()})
		}
	default:
		e.phase = PhaseDealing
		e.announced = false
	}
}

func (e *Engine) paused() bool {
	if !e.human || e.current != 0 {
		return false
	}
	h := e.hands[0]
	return len(h.Cards) >= 2 && !h.Stood && !h.Eliminated
}

// resolve picks the winner among seats that have not busted
func (e *Engine) resolve() {
	var best *Hand
	var tied []*Hand
	for _, h := range e.hands {
		if !h.Active() {
			continue
		}
		switch {
		case best == nil || h.Score > best.Score:
			best = h
			tied = []*Hand{h}
		case h.Score == best.Score:
			tied = append(tied, h)
		}
	}

	switch {
	case best == nil:
		e.push(Outcome{Kind: OutcomePush, Reason: PushAllBusted}, allBustedMessage)
	case len(tied) == 1:
		e.say(winLine(e.DisplayName(best.Seat), best.Score))
		e.win(best)
	default:
		names := make([]string, len(tied))
		seats := make([]int, len(tied))
		for i, h := range tied {
			names[i] = e.DisplayName(h.Seat)
			seats[i] = h.Seat
		}
		e.push(Outcome{Kind: OutcomePush, Reason: PushTie, Score: best.Score, Tied: seats}, tieMessage(names, best.Score))
	}
}

func (e *Engine) win(hand *Hand) {
	e.outcome = Outcome{Kind: OutcomeWinner, Seat: hand.Seat, Score: hand.Score}
	e.summary = FormatSummary(e.DisplayName(hand.Seat), hand.Cards, hand.Score)
	e.complete()
}

func (e *Engine) push(outcome Outcome, message string) {
	e.outcome = outcome
	e.pushMessage = message
	e.say(message)
	e.complete()
}

func (e *Engine) abort() {
	e.gameOver = true
	e.outcome = Outcome{Kind: OutcomeAborted}
	e.say("Round aborted: the deck contained an invalid card.")
	e.complete()
}

func (e *Engine) complete() {
	e.phase = PhaseComplete
	e.logger.Debug("Round resolved", "outcome", e.outcome.Kind, "summary", e.summary, "push", e.pushMessage)
	e.bus.Publish(RoundCompleteEvent{
		Outcome:     e.outcome,
		Summary:     e.summary,
		PushMessage: e.pushMessage,
		timestamp:   time.Now(),
	})
}

// say prepends a commentary line so the newest is first
func (e *Engine) say(line string) {
	e.commentary = append([]string{line}, e.commentary...)
}
