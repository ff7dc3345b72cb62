package server

import (
	"encoding/json"
	"time"

	"github.com/lox/simplejack/internal/game"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

const (
	// Client → Server
	MessageTypeStart    MessageType = "start"
	MessageTypeHit      MessageType = "hit"
	MessageTypeStand    MessageType = "stand"
	MessageTypeReset    MessageType = "reset"
	MessageTypeGetState MessageType = "get_state"

	// Server → Client
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// StartData begins a round. Deck, when present, is the full 52-card deal
// order as "<Suit>-<Rank>" tokens. Speed overrides the server default.
type StartData struct {
	Players    int      `json:"players"`
	PlayerName string   `json:"playerName,omitempty"`
	Speed      string   `json:"speed,omitempty"`
	Deck       []string `json:"deck,omitempty"`
}

// StateData carries the round snapshot after every change. Round numbers the
// rounds started on this connection and RoundID names it in server logs.
type StateData struct {
	Round   int           `json:"round"`
	RoundID string        `json:"roundId,omitempty"`
	State   game.Snapshot `json:"state"`
}

// ErrorData reports a rejected request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes sent to clients
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeInvalidPlayers = "invalid_players"
	ErrCodeInvalidDeck    = "invalid_deck"
	ErrCodeInvalidSpeed   = "invalid_speed"
	ErrCodeNoRound        = "no_round"
	ErrCodeNotYourTurn    = "not_awaiting_decision"
	ErrCodeRoundAborted   = "round_aborted"
)
