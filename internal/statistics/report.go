package statistics

// Report is the JSON form of a simulation run
type Report struct {
	Seed          int64        `json:"seed"`
	Players       int          `json:"players"`
	Rounds        int          `json:"rounds"`
	Wins          int          `json:"wins"`
	Pushes        int          `json:"pushes"`
	Ties          int          `json:"ties"`
	AllBusted     int          `json:"allBusted"`
	Aborted       int          `json:"aborted"`
	Naturals      int          `json:"naturals"`
	PushRate      float64      `json:"pushRate"`
	CardsPerRound float64      `json:"cardsPerRound"`
	WinningScore  ScoreSummary `json:"winningScore"`
	Seats         []SeatReport `json:"seats"`
}

// ScoreSummary describes the distribution of winning scores
type ScoreSummary struct {
	Mean     float64    `json:"mean"`
	StdDev   float64    `json:"stdDev"`
	StdError float64    `json:"stdError"`
	CI95     [2]float64 `json:"ci95"`
	Median   float64    `json:"median"`
	P10      float64    `json:"p10"`
	P90      float64    `json:"p90"`
}

// SeatReport is one seat's share of the wins
type SeatReport struct {
	Seat     int     `json:"seat"`
	Wins     int     `json:"wins"`
	WinRate  float64 `json:"winRate"`
	Naturals int     `json:"naturals"`
}

// Report summarises the statistics for a run at a table of players seats
func (s *Statistics) Report(seed int64, players int) Report {
	low, high := s.ConfidenceInterval95()
	r := Report{
		Seed:          seed,
		Players:       players,
		Rounds:        s.Rounds,
		Wins:          s.Wins,
		Pushes:        s.Pushes,
		Ties:          s.Ties,
		AllBusted:     s.AllBusted,
		Aborted:       s.Aborted,
		Naturals:      s.Naturals,
		PushRate:      s.PushRate(),
		CardsPerRound: s.CardsPerRound(),
		WinningScore: ScoreSummary{
			Mean:     s.Mean(),
			StdDev:   s.StdDev(),
			StdError: s.StdError(),
			CI95:     [2]float64{low, high},
			Median:   s.Median(),
			P10:      s.Percentile(0.1),
			P90:      s.Percentile(0.9),
		},
	}
	for seat := 1; seat <= players && seat < len(s.SeatResults); seat++ {
		r.Seats = append(r.Seats, SeatReport{
			Seat:     seat,
			Wins:     s.SeatResults[seat].Wins,
			WinRate:  s.WinRate(seat),
			Naturals: s.SeatResults[seat].Naturals,
		})
	}
	return r
}
