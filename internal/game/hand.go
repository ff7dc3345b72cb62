package game

import (
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/evaluator"
)

// Hand is the per-seat state for one round. Seat is 1-based.
type Hand struct {
	Seat       int
	Cards      []deck.Card
	Score      int
	Eliminated bool
	Stood      bool
}

func newHand(seat int) *Hand {
	return &Hand{Seat: seat}
}

// add appends a card and rescores the whole hand
func (h *Hand) add(card deck.Card) {
	h.Cards = append(h.Cards, card)
	h.Score = evaluator.Score(h.Cards)
	if evaluator.IsBust(h.Score) {
		h.Eliminated = true
	}
}

// Active reports whether the seat is still in contention
func (h *Hand) Active() bool {
	return !h.Eliminated
}

func (h *Hand) clone() Hand {
	c := *h
	c.Cards = make([]deck.Card, len(h.Cards))
	copy(c.Cards, h.Cards)
	return c
}
