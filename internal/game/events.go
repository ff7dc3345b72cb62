package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStart       EventType = "round_start"
	EventTypeCardDealt        EventType = "card_dealt"
	EventTypeSeatBusted       EventType = "seat_busted"
	EventTypeSeatStood        EventType = "seat_stood"
	EventTypeDecisionRequired EventType = "decision_required"
	EventTypeRoundComplete    EventType = "round_complete"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when hands have been created for a new round
type RoundStartEvent struct {
	Players   int
	Labels    []string
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published after a card lands in a seat's hand
type CardDealtEvent struct {
	Seat      int
	Label     string
	Card      deck.Card
	Score     int
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// SeatBustedEvent is published when a seat goes over 21
type SeatBustedEvent struct {
	Seat      int
	Label     string
	Score     int
	timestamp time.Time
}

func (e SeatBustedEvent) EventType() EventType { return EventTypeSeatBusted }
func (e SeatBustedEvent) Timestamp() time.Time { return e.timestamp }

// SeatStoodEvent is published when the human seat stands
type SeatStoodEvent struct {
	Seat      int
	Label     string
	Score     int
	timestamp time.Time
}

func (e SeatStoodEvent) EventType() EventType { return EventTypeSeatStood }
func (e SeatStoodEvent) Timestamp() time.Time { return e.timestamp }

// DecisionRequiredEvent is published once each time the engine pauses for
// the human seat
type DecisionRequiredEvent struct {
	Seat      int
	Score     int
	timestamp time.Time
}

func (e DecisionRequiredEvent) EventType() EventType { return EventTypeDecisionRequired }
func (e DecisionRequiredEvent) Timestamp() time.Time { return e.timestamp }

// RoundCompleteEvent is published when the outcome has been resolved
type RoundCompleteEvent struct {
	Outcome     Outcome
	Summary     string
	PushMessage string
	timestamp   time.Time
}

func (e RoundCompleteEvent) EventType() EventType { return EventTypeRoundComplete }
func (e RoundCompleteEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a plain function to EventSubscriber
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. SubscriberFunc values are not comparable
// and must be wrapped in a pointer type to be removable.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// LogSubscriber writes every event to a logger at debug level
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber creates a subscriber that logs through logger
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger}
}

func (s *LogSubscriber) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case RoundStartEvent:
		s.logger.Debug("Round started", "players", e.Players)
	case CardDealtEvent:
		s.logger.Debug("Card dealt", "seat", e.Label, "card", e.Card, "score", e.Score)
	case SeatBustedEvent:
		s.logger.Debug("Seat busted", "seat", e.Label, "score", e.Score)
	case SeatStoodEvent:
		s.logger.Debug("Seat stood", "seat", e.Label, "score", e.Score)
	case DecisionRequiredEvent:
		s.logger.Debug("Waiting for decision", "score", e.Score)
	case RoundCompleteEvent:
		s.logger.Info("Round complete", "outcome", e.Outcome.Kind, "winner", e.Outcome.Seat, "summary", e.Summary, "push", e.PushMessage)
	default:
		s.logger.Debug("Event", "type", event.EventType())
	}
}
