package evaluator

import (
	"testing"

	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		expected int
	}{
		{name: "empty hand", cards: nil, expected: 0},
		{name: "single number", cards: []string{"Hearts-7"}, expected: 7},
		{name: "picture cards", cards: []string{"Spades-Jack", "Hearts-Queen", "Clubs-King"}, expected: 30},
		{name: "ten and two", cards: []string{"Hearts-10", "Diamonds-2"}, expected: 12},
		{name: "blackjack", cards: []string{"Spades-Jack", "Spades-Ace"}, expected: 21},
		{name: "lone ace", cards: []string{"Spades-Ace"}, expected: 11},
		{name: "two aces", cards: []string{"Spades-Ace", "Hearts-Ace"}, expected: 2},
		{name: "ace low", cards: []string{"Spades-Ace", "Hearts-King", "Clubs-5"}, expected: 16},
		{name: "ace exactly fits", cards: []string{"Spades-Ace", "Hearts-5", "Clubs-5"}, expected: 21},
		{name: "ace with nine", cards: []string{"Spades-Ace", "Hearts-9"}, expected: 20},
		{name: "three aces", cards: []string{"Spades-Ace", "Hearts-Ace", "Clubs-Ace"}, expected: 3},
		{name: "four aces and seven", cards: []string{"Spades-Ace", "Hearts-Ace", "Clubs-Ace", "Diamonds-Ace", "Clubs-7"}, expected: 11},
		{name: "bust", cards: []string{"Spades-King", "Clubs-Queen", "Hearts-5"}, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(deck.MustParseCards(tt.cards...)))
		})
	}
}

func TestCardValue(t *testing.T) {
	assert.Equal(t, 1, CardValue(deck.MustParse("Hearts-Ace")))
	assert.Equal(t, 2, CardValue(deck.MustParse("Hearts-2")))
	assert.Equal(t, 10, CardValue(deck.MustParse("Hearts-10")))
	assert.Equal(t, 10, CardValue(deck.MustParse("Hearts-Jack")))
	assert.Equal(t, 10, CardValue(deck.MustParse("Hearts-King")))
	assert.Equal(t, 0, CardValue(deck.Card{}))
}

func TestScoreProperties(t *testing.T) {
	rng := randutil.New(2024)

	for i := 0; i < 500; i++ {
		cards := deck.Shuffled(rng)
		n := 1 + rng.IntN(6)
		hand := cards[:n]

		score := Score(hand)

		sum, aces := 0, 0
		for _, c := range hand {
			if c.IsAce() {
				aces++
				continue
			}
			sum += CardValue(c)
		}

		// score is one of the two ace interpretations
		if aces == 0 {
			assert.Equal(t, sum, score)
		} else if sum+11*aces <= TargetSum {
			assert.Equal(t, sum+11*aces, score)
		} else {
			assert.Equal(t, sum+aces, score)
		}

		// order never matters
		reversed := make([]deck.Card, n)
		for j, c := range hand {
			reversed[n-1-j] = c
		}
		assert.Equal(t, score, Score(reversed))
	}
}

func TestPredicates(t *testing.T) {
	assert.False(t, IsBust(21))
	assert.True(t, IsBust(22))
	assert.True(t, IsTarget(21))
	assert.False(t, IsTarget(20))

	assert.True(t, MustDraw(16))
	assert.False(t, MustDraw(17))
	assert.True(t, MustStand(17))
	assert.True(t, MustStand(20))
	assert.False(t, MustStand(21))
	assert.False(t, MustStand(16))
}
