package game

// OutcomeKind tags the result of a round
type OutcomeKind string

const (
	OutcomeNone    OutcomeKind = "none"
	OutcomeWinner  OutcomeKind = "winner"
	OutcomePush    OutcomeKind = "push"
	OutcomeAborted OutcomeKind = "aborted"
)

// PushReason explains why a round has no single winner
type PushReason string

const (
	PushTie       PushReason = "tie"
	PushAllBusted PushReason = "all_busted"
)

// PushWinner is the legacy winner value reported for a push
const PushWinner = -1

// Outcome is the resolved result of a round. Seat is set only for
// OutcomeWinner; Reason and Tied only for OutcomePush.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Seat   int         `json:"seat,omitempty"`
	Score  int         `json:"score,omitempty"`
	Reason PushReason  `json:"reason,omitempty"`
	Tied   []int       `json:"tied,omitempty"`
}

// Resolved reports whether the round has a final result
func (o Outcome) Resolved() bool {
	return o.Kind != OutcomeNone && o.Kind != ""
}

// IsPush reports whether the round ended without a single winner
func (o Outcome) IsPush() bool {
	return o.Kind == OutcomePush
}

// Winner returns the winning seat id, PushWinner for a push, or 0 when
// there is neither.
func (o Outcome) Winner() int {
	switch o.Kind {
	case OutcomeWinner:
		return o.Seat
	case OutcomePush:
		return PushWinner
	}
	return 0
}
