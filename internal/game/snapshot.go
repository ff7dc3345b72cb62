package game

import "github.com/lox/simplejack/internal/deck"

// SeatView is a read-only copy of one seat's hand
type SeatView struct {
	Seat       int         `json:"seat"`
	Label      string      `json:"label"`
	Cards      []deck.Card `json:"cards"`
	Score      int         `json:"score"`
	Eliminated bool        `json:"eliminated"`
	Stood      bool        `json:"stood"`
	Human      bool        `json:"human"`
}

// Snapshot is a deep copy of the round state for display. Winner keeps the
// legacy integer form of Outcome: a seat id, PushWinner, or 0.
type Snapshot struct {
	Phase          Phase      `json:"phase"`
	Players        int        `json:"players"`
	Seats          []SeatView `json:"seats"`
	CurrentSeat    int        `json:"currentSeat"`
	GameOver       bool       `json:"gameOver"`
	Outcome        Outcome    `json:"outcome"`
	Winner         int        `json:"winner"`
	PushMessage    string     `json:"pushMessage,omitempty"`
	Commentary     []string   `json:"commentary"`
	Summary        string     `json:"summary,omitempty"`
	HasSummary     bool       `json:"hasSummary"`
	HighScore      int        `json:"highScore"`
	CardsRemaining int        `json:"cardsRemaining"`
}

// AwaitingDecision reports whether the human seat must hit or stand
func (s Snapshot) AwaitingDecision() bool {
	return s.Phase == PhaseAwaitingDecision
}

// Seat returns the view of a 1-based seat
func (s Snapshot) Seat(seat int) (SeatView, bool) {
	if seat < 1 || seat > len(s.Seats) {
		return SeatView{}, false
	}
	return s.Seats[seat-1], true
}

// Snapshot returns a copy of the current round state
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:       e.phase,
		Players:     len(e.hands),
		Seats:       make([]SeatView, len(e.hands)),
		CurrentSeat: e.current,
		GameOver:    e.gameOver,
		Outcome:     e.outcome,
		Winner:      e.outcome.Winner(),
		PushMessage: e.pushMessage,
		Commentary:  make([]string, len(e.commentary)),
		Summary:     e.summary,
		HasSummary:  e.summary != "",
		HighScore:   e.highScore,
	}
	if e.outcome.Tied != nil {
		s.Outcome.Tied = append([]int(nil), e.outcome.Tied...)
	}
	copy(s.Commentary, e.commentary)
	if e.deck != nil {
		s.CardsRemaining = e.deck.Remaining()
	}

	for i, h := range e.hands {
		c := h.clone()
		s.Seats[i] = SeatView{
			Seat:       c.Seat,
			Label:      e.DisplayName(c.Seat),
			Cards:      c.Cards,
			Score:      c.Score,
			Eliminated: c.Eliminated,
			Stood:      c.Stood,
			Human:      e.human && i == 0,
		}
	}
	return s
}
