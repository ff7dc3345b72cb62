package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/simplejack/internal/deck"
)

const (
	// DefaultPlayerName labels the human seat when no name was given
	DefaultPlayerName = "Player"
	// DealerLabel labels the last seat
	DealerLabel = "Dealer"

	allBustedMessage = "Push - All players have busted."
	deckEmptyMessage = "The deck has run out of cards."
)

// SeatLabeller names a 1-based seat at a table of n seats
type SeatLabeller func(seat, n int) string

// NumberedSeats labels every seat by its number, as batch play reports it
func NumberedSeats(seat, _ int) string {
	return strconv.Itoa(seat)
}

// TableSeats labels seat 1 with name (or DefaultPlayerName), the last seat
// DealerLabel and every other seat "Player <seat>".
func TableSeats(name string) SeatLabeller {
	if strings.TrimSpace(name) == "" {
		name = DefaultPlayerName
	}
	return func(seat, n int) string {
		switch seat {
		case 1:
			return name
		case n:
			return DealerLabel
		}
		return fmt.Sprintf("Player %d", seat)
	}
}

func drawLine(name string, card deck.Card) string {
	return fmt.Sprintf("%s draws %s", name, card)
}

func hitTargetLine(name string) string {
	return fmt.Sprintf("%s hits 21!", name)
}

func bustLine(name string, score int) string {
	return fmt.Sprintf("%s busts with %d!", name, score)
}

func standLine(name string, score int) string {
	return fmt.Sprintf("%s chooses to stand with %d", name, score)
}

func winLine(name string, score int) string {
	return fmt.Sprintf("%s wins with the highest score of %d!", name, score)
}

func tieMessage(names []string, score int) string {
	return fmt.Sprintf("Push - %s are tied with %d points.", joinNames(names), score)
}

// joinNames renders "A and B" or "A, B and C"
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// FormatSummary renders the winning line, e.g.
// "Winner: 1, Hand: ['Spades-Jack', 'Spades-Ace'], Value: 21"
func FormatSummary(label string, cards []deck.Card, score int) string {
	quoted := make([]string, len(cards))
	for i, c := range cards {
		quoted[i] = "'" + c.String() + "'"
	}
	return fmt.Sprintf("Winner: %s, Hand: [%s], Value: %d", label, strings.Join(quoted, ", "), score)
}
