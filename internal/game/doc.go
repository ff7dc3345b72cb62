// Package game implements the round engine for Simple Jack, a dealer-less
// blackjack variant where every seat draws independently and the highest
// hand at or under 21 wins.
//
// The main type is Engine, which owns the deck, one Hand per seat, the
// current-turn pointer and the round outcome. It is a step machine: callers
// invoke Advance once per tick and Hit or Stand when the human seat is
// waiting for a decision.
//
// # Basic Usage
//
//	e := game.New(game.WithPlayerName("Ada"))
//	if err := e.StartRound(4, nil); err != nil {
//	    return err
//	}
//	for e.Phase() != game.PhaseComplete {
//	    if e.Phase() == game.PhaseAwaitingDecision {
//	        _ = e.Stand()
//	        continue
//	    }
//	    if err := e.Advance(); err != nil {
//	        return err
//	    }
//	}
//	fmt.Println(e.Snapshot().Summary)
//
// RunToCompletion wraps the same loop and asks a DecideFunc at each pause.
//
// # Deterministic Testing
//
// StartRound accepts a full 52-card deck that is dealt in order. Use
// deck.Stacked to put the interesting cards on top:
//
//	cards, _ := deck.Stacked(randutil.New(1), deck.MustParseCards("Spades-Jack", "Hearts-2", "Spades-Ace")...)
//	summary, ok, err := game.Play(cards, 2)
//
// # Architecture
//
// The engine is single-threaded. The table package adds a clock-driven
// scheduler and a mutex for shells that drive it from several goroutines.
// Scoring is delegated to the evaluator package and card validation to the
// deck package.
package game
