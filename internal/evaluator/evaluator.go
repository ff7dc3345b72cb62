package evaluator

// Hand scoring for Simple Jack.
// Every card counts its face value, picture cards count ten, and aces are
// valued together: all eleven if that keeps the hand at or under the target,
// otherwise all one.

import "github.com/lox/simplejack/internal/deck"

const (
	// TargetSum is the hand value that wins outright; anything above busts
	TargetSum = 21
	// StandThreshold is the value at which a seat stops drawing
	StandThreshold = 17

	aceHigh = 11
	aceLow  = 1
	picture = 10
)

// CardValue returns the points a single card contributes, counting an ace as one
func CardValue(card deck.Card) int {
	switch {
	case card.Rank == deck.Ace:
		return aceLow
	case card.Rank.IsFace():
		return picture
	case card.Rank.Valid():
		return int(card.Rank)
	}
	return 0
}

// Score returns the value of a hand. With S the sum of the non-ace cards and
// k aces, the value is S+11k when that is at most TargetSum, else S+k.
func Score(cards []deck.Card) int {
	sum, aces := 0, 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
			continue
		}
		sum += CardValue(c)
	}

	if aces == 0 {
		return sum
	}
	if high := sum + aceHigh*aces; high <= TargetSum {
		return high
	}
	return sum + aceLow*aces
}

// IsBust reports whether score is over TargetSum
func IsBust(score int) bool {
	return score > TargetSum
}

// IsTarget reports whether score is exactly TargetSum
func IsTarget(score int) bool {
	return score == TargetSum
}

// MustStand reports whether a seat at score stops drawing without busting
func MustStand(score int) bool {
	return score >= StandThreshold && score < TargetSum
}

// MustDraw reports whether a seat at score is forced to draw
func MustDraw(score int) bool {
	return score < StandThreshold
}
