package game

import (
	"errors"
	"fmt"
)

const (
	// MinPlayers is the smallest table a round can be dealt to
	MinPlayers = 2
	// MaxPlayers is the largest table a round can be dealt to
	MaxPlayers = 6
)

var (
	// ErrInvalidPlayerCount matches any *InvalidPlayerCountError via errors.Is
	ErrInvalidPlayerCount = errors.New("invalid player count")

	// ErrNotAwaitingDecision is returned by Hit and Stand outside the paused
	// state. The call is otherwise ignored, so callers may drop it.
	ErrNotAwaitingDecision = errors.New("not awaiting a decision")

	// ErrRoundNotStarted is returned by Advance before StartRound
	ErrRoundNotStarted = errors.New("round not started")
)

// InvalidPlayerCountError reports a player count outside [MinPlayers, MaxPlayers]
type InvalidPlayerCountError struct {
	Count int
}

func (e *InvalidPlayerCountError) Error() string {
	return fmt.Sprintf("invalid player count %d: must be between %d and %d", e.Count, MinPlayers, MaxPlayers)
}

func (e *InvalidPlayerCountError) Is(target error) bool {
	return target == ErrInvalidPlayerCount
}

// ValidatePlayerCount fails when n is outside [MinPlayers, MaxPlayers]
func ValidatePlayerCount(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return &InvalidPlayerCountError{Count: n}
	}
	return nil
}
