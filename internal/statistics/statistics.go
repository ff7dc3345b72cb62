package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/simplejack/internal/game"
)

// RoundResult represents the outcome of a single round
type RoundResult struct {
	Players      int
	Outcome      game.OutcomeKind
	PushReason   game.PushReason
	Winner       int  // 1-based seat, 0 unless Outcome is a winner
	WinningScore int  // score of the winning hand
	Natural      bool // winner reached exactly 21
	CardsDealt   int
}

// ResultFromSnapshot builds a RoundResult from a completed round
func ResultFromSnapshot(s game.Snapshot) RoundResult {
	r := RoundResult{
		Players:    s.Players,
		Outcome:    s.Outcome.Kind,
		PushReason: s.Outcome.Reason,
	}
	for _, seat := range s.Seats {
		r.CardsDealt += len(seat.Cards)
	}
	if s.Outcome.Kind == game.OutcomeWinner {
		r.Winner = s.Outcome.Seat
		r.WinningScore = s.Outcome.Score
		r.Natural = s.Outcome.Score == 21
	}
	return r
}

// SeatStats tracks wins for one seat position
type SeatStats struct {
	Wins     int
	Naturals int
}

// Statistics aggregates many rounds. Winning-score moments are computed
// over won rounds only.
type Statistics struct {
	Rounds     int
	Wins       int
	Pushes     int
	Ties       int
	AllBusted  int
	Aborted    int
	Naturals   int
	CardsDealt int

	SumScore  float64
	SumScore2 float64
	Values    []float64 // winning scores, for median/percentile

	SeatResults [game.MaxPlayers + 1]SeatStats // index 0 unused
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.CardsDealt += result.CardsDealt

	switch result.Outcome {
	case game.OutcomeWinner:
		s.Wins++
		score := float64(result.WinningScore)
		s.SumScore += score
		s.SumScore2 += score * score
		s.Values = append(s.Values, score)
		if result.Natural {
			s.Naturals++
		}
		if result.Winner >= 1 && result.Winner <= game.MaxPlayers {
			s.SeatResults[result.Winner].Wins++
			if result.Natural {
				s.SeatResults[result.Winner].Naturals++
			}
		}
	case game.OutcomePush:
		s.Pushes++
		if result.PushReason == game.PushAllBusted {
			s.AllBusted++
		} else {
			s.Ties++
		}
	default:
		s.Aborted++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other == nil {
		return
	}
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Pushes += other.Pushes
	s.Ties += other.Ties
	s.AllBusted += other.AllBusted
	s.Aborted += other.Aborted
	s.Naturals += other.Naturals
	s.CardsDealt += other.CardsDealt
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Values = append(s.Values, other.Values...)
	for i := range s.SeatResults {
		s.SeatResults[i].Wins += other.SeatResults[i].Wins
		s.SeatResults[i].Naturals += other.SeatResults[i].Naturals
	}
}

// WinRate returns the fraction of rounds won by a 1-based seat
func (s *Statistics) WinRate(seat int) float64 {
	if s.Rounds == 0 || seat < 1 || seat > game.MaxPlayers {
		return 0
	}
	return float64(s.SeatResults[seat].Wins) / float64(s.Rounds)
}

// PushRate returns the fraction of rounds without a single winner
func (s *Statistics) PushRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Pushes) / float64(s.Rounds)
}

// CardsPerRound returns the mean number of cards dealt per round
func (s *Statistics) CardsPerRound() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.CardsDealt) / float64(s.Rounds)
}

// Mean returns the mean winning score
func (s *Statistics) Mean() float64 {
	if s.Wins == 0 {
		return 0
	}
	return s.SumScore / float64(s.Wins)
}

// Variance returns the sample variance of winning scores
func (s *Statistics) Variance() float64 {
	if s.Wins < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Wins)*mean*mean) / float64(s.Wins-1)
}

// StdDev returns the sample standard deviation of winning scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean winning score
func (s *Statistics) StdError() float64 {
	if s.Wins == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Wins))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median winning score
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the winning score at p (0.0 to 1.0), interpolating
// between neighbours
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the tallies are consistent with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if s.Wins+s.Pushes+s.Aborted != s.Rounds {
		return fmt.Errorf("outcomes (%d wins, %d pushes, %d aborted) do not add up to %d rounds",
			s.Wins, s.Pushes, s.Aborted, s.Rounds)
	}
	if s.Ties+s.AllBusted != s.Pushes {
		return fmt.Errorf("push reasons (%d ties, %d all busted) do not add up to %d pushes",
			s.Ties, s.AllBusted, s.Pushes)
	}
	if len(s.Values) != s.Wins {
		return fmt.Errorf("values array length (%d) does not match wins (%d)", len(s.Values), s.Wins)
	}

	seatWins := 0
	for seat := 1; seat <= game.MaxPlayers; seat++ {
		seatWins += s.SeatResults[seat].Wins
	}
	if seatWins != s.Wins {
		return fmt.Errorf("seat wins total (%d) does not match wins (%d)", seatWins, s.Wins)
	}
	return nil
}
