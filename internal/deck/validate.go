package deck

import "fmt"

// Size is the number of cards in a standard deck
const Size = 52

// ValidateCard returns the card unchanged if its suit and rank are recognised
func ValidateCard(card Card) (Card, error) {
	if !card.Suit.Valid() {
		return Card{}, &InvalidCardError{Token: card.String(), Reason: "unrecognised suit"}
	}
	if !card.Rank.Valid() {
		return Card{}, &InvalidCardError{Token: card.String(), Reason: "unrecognised rank"}
	}
	return card, nil
}

// ValidateDeck checks that cards is a complete standard deck: exactly 52
// recognised cards with no duplicates. Order is not checked.
func ValidateDeck(cards []Card) error {
	if cards == nil {
		return &InvalidDeckError{Reason: "deck must be a sequence of cards"}
	}
	if len(cards) != Size {
		return &InvalidDeckError{Reason: fmt.Sprintf("deck must have %d cards, got %d", Size, len(cards))}
	}

	seen := make(map[Card]int, Size)
	for i, card := range cards {
		if _, err := ValidateCard(card); err != nil {
			return &InvalidDeckError{Reason: fmt.Sprintf("card %d", i+1), Err: err}
		}
		if first, dup := seen[card]; dup {
			return &InvalidDeckError{Reason: fmt.Sprintf("deck must have %d unique cards, %s appears at positions %d and %d", Size, card, first+1, i+1)}
		}
		seen[card] = i
	}

	return nil
}

// ParseDeck parses raw card tokens and validates the result as a deck
func ParseDeck(tokens []string) ([]Card, error) {
	if tokens == nil {
		return nil, &InvalidDeckError{Reason: "deck must be a sequence of cards"}
	}
	cards := make([]Card, 0, len(tokens))
	for i, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return nil, &InvalidDeckError{Reason: fmt.Sprintf("card %d", i+1), Err: err}
		}
		cards = append(cards, card)
	}
	if err := ValidateDeck(cards); err != nil {
		return nil, err
	}
	return cards, nil
}
