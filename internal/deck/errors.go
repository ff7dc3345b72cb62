package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCard matches any *InvalidCardError via errors.Is
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidDeck matches any *InvalidDeckError via errors.Is
	ErrInvalidDeck = errors.New("invalid deck")
)

// InvalidCardError reports a card whose suit or rank is not recognised
type InvalidCardError struct {
	Token  string
	Reason string
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card %q: %s", e.Token, e.Reason)
}

func (e *InvalidCardError) Is(target error) bool {
	return target == ErrInvalidCard
}

// InvalidDeckError reports a deck that is not a well-formed standard deck.
// Err holds the underlying card error when the deck contains a bad card.
type InvalidDeckError struct {
	Reason string
	Err    error
}

func (e *InvalidDeckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid deck: %s: %v", e.Reason, e.Err)
	}
	return "invalid deck: " + e.Reason
}

func (e *InvalidDeckError) Unwrap() error {
	return e.Err
}

func (e *InvalidDeckError) Is(target error) bool {
	return target == ErrInvalidDeck
}
