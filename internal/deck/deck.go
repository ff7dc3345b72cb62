package deck

import (
	"fmt"
	rand "math/rand/v2"
	"sort"
)

// MaxStackSeats bounds the seat ids accepted by StackedBySeat
const MaxStackSeats = 6

// Deck is an ordered pile of cards consumed from the front
type Deck struct {
	cards []Card
}

// New creates a deck that deals cards in the given order. The slice is copied.
func New(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}

// Cards returns a copy of the remaining cards in deal order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Standard returns the 52 cards of a standard deck, suit by suit, Ace to King
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffled returns a standard deck in random order
func Shuffled(rng *rand.Rand) []Card {
	cards := Standard()
	shuffle(rng, cards)
	return cards
}

// Stacked returns a full deck whose first cards are top, in order, followed
// by the rest of the standard deck in random order.
func Stacked(rng *rand.Rand, top ...Card) ([]Card, error) {
	used := make(map[Card]bool, len(top))
	for i, card := range top {
		if _, err := ValidateCard(card); err != nil {
			return nil, fmt.Errorf("stacked card %d: %w", i+1, err)
		}
		if used[card] {
			return nil, fmt.Errorf("stacked card %d: %s is stacked more than once", i+1, card)
		}
		used[card] = true
	}

	rest := make([]Card, 0, Size-len(top))
	for _, card := range Standard() {
		if !used[card] {
			rest = append(rest, card)
		}
	}
	shuffle(rng, rest)

	cards := make([]Card, 0, Size)
	cards = append(cards, top...)
	return append(cards, rest...), nil
}

// StackedBySeat builds a full deck that deals each seat's hand when cards go
// out one at a time in seat order. Seats are 1-based and limited to
// MaxStackSeats. Seats that run out of cards are skipped in later passes.
func StackedBySeat(rng *rand.Rand, hands map[int][]Card) ([]Card, error) {
	seats := make([]int, 0, len(hands))
	longest := 0
	for seat, cards := range hands {
		if seat < 1 || seat > MaxStackSeats {
			return nil, fmt.Errorf("seat ids must be between 1 and %d, got %d", MaxStackSeats, seat)
		}
		seats = append(seats, seat)
		longest = max(longest, len(cards))
	}
	sort.Ints(seats)

	var top []Card
	for i := 0; i < longest; i++ {
		for _, seat := range seats {
			if i < len(hands[seat]) {
				top = append(top, hands[seat][i])
			}
		}
	}

	return Stacked(rng, top...)
}

func shuffle(rng *rand.Rand, cards []Card) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
