package game

// Phase is the engine's position in the round lifecycle
type Phase string

const (
	PhaseAwaitingPlayers  Phase = "awaiting_players"
	PhaseDealing          Phase = "dealing"
	PhaseAwaitingDecision Phase = "awaiting_decision"
	PhaseResolving        Phase = "resolving"
	PhaseComplete         Phase = "complete"
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// InProgress reports whether cards are still being dealt or decided on
func (p Phase) InProgress() bool {
	return p == PhaseDealing || p == PhaseAwaitingDecision || p == PhaseResolving
}
