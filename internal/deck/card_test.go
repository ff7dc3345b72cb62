package deck

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Card
		wantErr  bool
	}{
		{name: "ace of spades", input: "Spades-Ace", expected: Card{Suit: Spades, Rank: Ace}},
		{name: "ten of hearts", input: "Hearts-10", expected: Card{Suit: Hearts, Rank: Ten}},
		{name: "two of clubs", input: "Clubs-2", expected: Card{Suit: Clubs, Rank: Two}},
		{name: "queen of diamonds", input: "Diamonds-Queen", expected: Card{Suit: Diamonds, Rank: Queen}},
		{name: "misspelled suit", input: "Cubs-Jack", wantErr: true},
		{name: "short rank", input: "Spades-A", wantErr: true},
		{name: "lower case", input: "spades-ace", wantErr: true},
		{name: "rank one", input: "Hearts-1", wantErr: true},
		{name: "rank eleven", input: "Hearts-11", wantErr: true},
		{name: "no separator", input: "SpadesAce", wantErr: true},
		{name: "blank", input: " ", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCard))
				var cardErr *InvalidCardError
				assert.True(t, errors.As(err, &cardErr))
				assert.Equal(t, tt.input, cardErr.Token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestCardTokensRoundTrip(t *testing.T) {
	for _, card := range Standard() {
		parsed, err := ParseCard(card.String())
		require.NoError(t, err)
		assert.Equal(t, card, parsed)
	}
}

func TestCardJSON(t *testing.T) {
	hand := []Card{MustParse("Spades-Jack"), MustParse("Hearts-Ace")}

	data, err := json.Marshal(hand)
	require.NoError(t, err)
	assert.JSONEq(t, `["Spades-Jack","Hearts-Ace"]`, string(data))

	var decoded []Card
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, hand, decoded)

	err = json.Unmarshal([]byte(`["Spades-Joker"]`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestZeroCardIsInvalid(t *testing.T) {
	var c Card
	assert.False(t, c.Valid())
	assert.Equal(t, "?-?", c.String())

	_, err := ValidateCard(c)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestCardDisplayHelpers(t *testing.T) {
	assert.Equal(t, "A♠", MustParse("Spades-Ace").Short())
	assert.Equal(t, "10♥", MustParse("Hearts-10").Short())
	assert.True(t, MustParse("Diamonds-4").IsRed())
	assert.False(t, MustParse("Clubs-4").IsRed())
	assert.True(t, King.IsFace())
	assert.False(t, Ten.IsFace())
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("Spades-Jack", "Hearts-2")
	require.NoError(t, err)
	assert.Equal(t, []Card{{Spades, Jack}, {Hearts, Two}}, cards)

	_, err = ParseCards("Spades-Jack", "Hearts-Two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card 2")

	assert.Panics(t, func() { MustParse("Joker") })
}
