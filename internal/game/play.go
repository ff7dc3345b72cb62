package game

import (
	"fmt"

	"github.com/lox/simplejack/internal/deck"
)

// Decision is the human seat's choice at a pause
type Decision int

const (
	DecisionStand Decision = iota
	DecisionHit
)

func (d Decision) String() string {
	if d == DecisionHit {
		return "hit"
	}
	return "stand"
}

// DecideFunc chooses for the human seat given the paused round
type DecideFunc func(Snapshot) Decision

// AlwaysStand stands at the first pause
func AlwaysStand(Snapshot) Decision { return DecisionStand }

// StandAt hits while the human seat scores below threshold
func StandAt(threshold int) DecideFunc {
	return func(s Snapshot) Decision {
		if seat, ok := s.Seat(1); ok && seat.Score < threshold {
			return DecisionHit
		}
		return DecisionStand
	}
}

// RunToCompletion advances the round until it is complete, asking decide at
// every pause. A nil decide always stands.
func (e *Engine) RunToCompletion(decide DecideFunc) error {
	if decide == nil {
		decide = AlwaysStand
	}
	for e.phase != PhaseComplete {
		if e.phase == PhaseAwaitingDecision {
			var err error
			switch decide(e.Snapshot()) {
			case DecisionHit:
				err = e.Hit()
			default:
				err = e.Stand()
			}
			if err != nil {
				return err
			}
			continue
		}
		if err := e.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// Play deals a full round with no human seat and reports the summary line,
// e.g. "Winner: 1, Hand: ['Spades-Jack', 'Spades-Ace'], Value: 21". Seats
// are labelled by number. ok is false when the round was a push.
func Play(cards []deck.Card, players int, opts ...Option) (summary string, ok bool, err error) {
	opts = append([]Option{WithSeatLabeller(NumberedSeats)}, opts...)
	opts = append(opts, WithoutHumanSeat())
	e := New(opts...)
	if err := e.StartRound(players, cards); err != nil {
		return "", false, err
	}
	if err := e.RunToCompletion(nil); err != nil {
		return "", false, fmt.Errorf("playing round: %w", err)
	}
	s := e.Snapshot()
	return s.Summary, s.HasSummary, nil
}
