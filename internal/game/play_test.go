package game

import (
	"testing"

	"github.com/lox/simplejack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlay(t *testing.T) {
	sixSeatDeal := []string{
		"Clubs-Jack", "Hearts-King", "Clubs-7", "Clubs-9", "Clubs-6", "Hearts-2",
		"Diamonds-4", "Spades-Jack", "Clubs-10", "Spades-9", "Clubs-4", "Diamonds-Jack",
		"Diamonds-Queen", "Hearts-7",
	}

	tests := []struct {
		name    string
		players int
		top     []string
		summary string
		ok      bool
	}{
		{
			name:    "first seat hits 21",
			players: 2,
			top:     []string{"Spades-Jack", "Hearts-2", "Spades-Ace"},
			summary: "Winner: 1, Hand: ['Spades-Jack', 'Spades-Ace'], Value: 21",
			ok:      true,
		},
		{
			name:    "first seat busts and second stands on 17",
			players: 2,
			top:     []string{"Spades-Jack", "Clubs-7", "Spades-6", "Diamonds-Jack", "Hearts-10"},
			summary: "Winner: 2, Hand: ['Clubs-7', 'Diamonds-Jack'], Value: 17",
			ok:      true,
		},
		{
			name:    "six seats with dealer bust",
			players: 6,
			top:     append(append([]string{}, sixSeatDeal...), "Diamonds-10"),
			summary: "Winner: 2, Hand: ['Hearts-King', 'Spades-Jack'], Value: 20",
			ok:      true,
		},
		{
			name:    "six seats tied on 20",
			players: 6,
			top:     append(append([]string{}, sixSeatDeal...), "Diamonds-8"),
			summary: "",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, ok, err := Play(stackedDeck(t, tt.top...), tt.players)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.summary, summary)
		})
	}
}

func TestPlayRejectsBadInput(t *testing.T) {
	_, _, err := Play(deck.Standard(), 1)
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)

	_, _, err = Play(deck.Standard()[:10], 2)
	assert.ErrorIs(t, err, deck.ErrInvalidDeck)
}

func TestPlayWithShuffledDeck(t *testing.T) {
	summary, ok, err := Play(nil, 4)
	require.NoError(t, err)
	if ok {
		assert.Regexp(t, `^Winner: [1-4], Hand: \[.+\], Value: \d+$`, summary)
	} else {
		assert.Empty(t, summary)
	}
}

func TestRunToCompletionConsultsDecider(t *testing.T) {
	e := newTestEngine(t, 2, "Hearts-2", "Spades-10", "Diamonds-3", "Hearts-6", "Clubs-2", "Clubs-8")

	var seen []int
	decide := func(s Snapshot) Decision {
		seat, _ := s.Seat(1)
		seen = append(seen, seat.Score)
		return StandAt(6)(s)
	}
	require.NoError(t, e.RunToCompletion(decide))

	assert.Equal(t, []int{5, 7}, seen)
	assert.Equal(t, "Winner: TestUser, Hand: ['Hearts-2', 'Diamonds-3', 'Clubs-2'], Value: 7", e.Snapshot().Summary)
}

func TestRunToCompletionBeforeStart(t *testing.T) {
	assert.ErrorIs(t, New().RunToCompletion(nil), ErrRoundNotStarted)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "hit", DecisionHit.String())
	assert.Equal(t, "stand", DecisionStand.String())
}
