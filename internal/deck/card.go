package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit. The zero value is not a valid suit.
type Suit uint8

const (
	Hearts Suit = iota + 1
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
	Clubs:    "Clubs",
	Spades:   "Spades",
}

// Suits returns the four recognised suits in declaration order
func Suits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// Valid reports whether s is one of the four recognised suits
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Spades
}

// String returns the suit name used in card tokens (e.g. "Hearts")
func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return suitNames[s]
}

// Symbol returns the unicode pip for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Numeric ranks carry their face value.
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks returns the thirteen recognised ranks from Ace to King
func Ranks() []Rank {
	ranks := make([]Rank, 0, 13)
	for r := Ace; r <= King; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// Valid reports whether r is one of the thirteen recognised ranks
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// String returns the rank name used in card tokens (e.g. "Ace", "7", "Queen")
func (r Rank) String() string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	if r.Valid() {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Short returns a compact rank label for narrow displays
func (r Rank) Short() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return r.String()
}

// IsFace returns true for Jack, Queen and King
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// Card is an immutable playing card. Cards compare by value.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the card token, e.g. "Spades-Ace" or "Hearts-10"
func (c Card) String() string {
	return c.Suit.String() + "-" + c.Rank.String()
}

// Short returns a compact label such as "A♠"
func (c Card) Short() string {
	return c.Rank.Short() + c.Suit.Symbol()
}

// Valid reports whether both suit and rank are recognised
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// MarshalText encodes the card as its token so JSON carries "Spades-Ace"
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &InvalidCardError{Token: c.String(), Reason: "unrecognised suit or rank"}
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a card token
func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// ParseCard parses a "<Suit>-<Rank>" token. Matching is exact: "spades-ace"
// and "Spades-A" are rejected.
func ParseCard(token string) (Card, error) {
	suitPart, rankPart, ok := strings.Cut(token, "-")
	if !ok {
		return Card{}, &InvalidCardError{Token: token, Reason: "expected <Suit>-<Rank>"}
	}

	suit, ok := suitByName[suitPart]
	if !ok {
		return Card{}, &InvalidCardError{Token: token, Reason: fmt.Sprintf("unknown suit %q", suitPart)}
	}
	rank, ok := rankByName[rankPart]
	if !ok {
		return Card{}, &InvalidCardError{Token: token, Reason: fmt.Sprintf("unknown rank %q", rankPart)}
	}

	return Card{Suit: suit, Rank: rank}, nil
}

// ParseCards parses a list of card tokens, stopping at the first invalid one
func ParseCards(tokens ...string) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	for i, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParse is like ParseCard but panics on error. Intended for fixtures.
func MustParse(token string) Card {
	card, err := ParseCard(token)
	if err != nil {
		panic(err)
	}
	return card
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(tokens ...string) []Card {
	cards, err := ParseCards(tokens...)
	if err != nil {
		panic(err)
	}
	return cards
}

var (
	suitByName = map[string]Suit{}
	rankByName = map[string]Rank{}
)

func init() {
	for _, s := range Suits() {
		suitByName[s.String()] = s
	}
	for _, r := range Ranks() {
		rankByName[r.String()] = r
	}
}
