package server

import (
	"context"
	"encoding/json"
	"errors"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/randutil"
	"github.com/lox/simplejack/internal/roundid"
	"github.com/lox/simplejack/internal/table"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. A start message carrying a
	// full deck is a little over 1KB.
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// ConnectionConfig carries the per-connection settings handed out by Server
type ConnectionConfig struct {
	Defaults Defaults
	Clock    quartz.Clock
	Seed     int64
}

// Connection represents a WebSocket connection to a client. It owns one
// table at a time; a new start message replaces it.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	cfg   ConnectionConfig
	rng   *rand.Rand
	ids   *roundid.Generator
	mu    sync.Mutex
	table *table.Table
	round roundInfo
}

// roundInfo identifies the table a state message belongs to
type roundInfo struct {
	number int
	id     string
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, cfg ConnectionConfig) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	seeds := randutil.Derive(cfg.Seed, 2)

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		rng:    randutil.New(seeds[0]),
		ids:    roundid.NewGenerator(cfg.Clock, randutil.New(seeds[1])),
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection. The table is stopped when the read pump exits.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client without blocking
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() {
		c.stopTable()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeStart:
		var data StartData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError(ErrCodeInvalidMessage, "Failed to parse start data")
				return
			}
		}
		c.handleStart(data)

	case MessageTypeHit:
		c.handleDecision(game.DecisionHit)

	case MessageTypeStand:
		c.handleDecision(game.DecisionStand)

	case MessageTypeReset:
		c.handleReset()

	case MessageTypeGetState:
		c.handleGetState()

	default:
		c.sendError(ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleStart(data StartData) {
	players := data.Players
	if players == 0 {
		players = c.cfg.Defaults.Players
	}
	if err := game.ValidatePlayerCount(players); err != nil {
		c.sendError(ErrCodeInvalidPlayers, err.Error())
		return
	}

	speed := c.cfg.Defaults.Speed
	if data.Speed != "" {
		parsed, err := table.ParseSpeed(data.Speed)
		if err != nil {
			c.sendError(ErrCodeInvalidSpeed, err.Error())
			return
		}
		speed = parsed
	}

	var cards []deck.Card
	if data.Deck != nil {
		parsed, err := deck.ParseDeck(data.Deck)
		if err != nil {
			c.sendError(ErrCodeInvalidDeck, err.Error())
			return
		}
		cards = parsed
	}

	name := data.PlayerName
	if name == "" {
		name = c.cfg.Defaults.PlayerName
	}

	engine := game.New(
		game.WithPlayerName(name),
		game.WithRand(c.rng),
		game.WithLogger(c.logger),
	)

	c.mu.Lock()
	if c.table != nil {
		c.table.Close()
	}
	round := roundInfo{number: c.round.number + 1, id: c.ids.Next()}
	c.round = round
	tbl := table.New(engine,
		table.WithClock(c.cfg.Clock),
		table.WithSpeed(speed),
		table.WithLogger(c.logger.With("round", round.id)),
		table.WithOnChange(func(s game.Snapshot) { c.sendState(round, s) }),
	)
	c.table = tbl
	c.mu.Unlock()

	c.logger.Info("Start request", "round", round.id, "players", players, "playerName", name, "speed", speed, "stacked", cards != nil)
	if err := tbl.Start(players, cards); err != nil {
		code := ErrCodeInvalidMessage
		switch {
		case errors.Is(err, game.ErrInvalidPlayerCount):
			code = ErrCodeInvalidPlayers
		case errors.Is(err, deck.ErrInvalidDeck):
			code = ErrCodeInvalidDeck
		}
		c.sendError(code, err.Error())
	}
}

func (c *Connection) handleDecision(decision game.Decision) {
	tbl, _ := c.current()
	if tbl == nil {
		c.sendError(ErrCodeNoRound, "No round in progress")
		return
	}

	c.logger.Info("Player decision", "decision", decision)
	var err error
	if decision == game.DecisionHit {
		err = tbl.Hit()
	} else {
		err = tbl.Stand()
	}

	switch {
	case err == nil:
	case errors.Is(err, game.ErrNotAwaitingDecision):
		c.sendError(ErrCodeNotYourTurn, "Not waiting for a decision")
	default:
		c.sendError(ErrCodeRoundAborted, err.Error())
	}
}

func (c *Connection) handleReset() {
	tbl, _ := c.current()
	if tbl == nil {
		c.sendError(ErrCodeNoRound, "No round in progress")
		return
	}
	tbl.Reset()
}

func (c *Connection) handleGetState() {
	tbl, round := c.current()
	snap := game.Snapshot{Phase: game.PhaseAwaitingPlayers}
	if tbl != nil {
		snap = tbl.Snapshot()
	}
	c.sendState(round, snap)
}

func (c *Connection) current() (*table.Table, roundInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table, c.round
}

func (c *Connection) stopTable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table != nil {
		c.table.Close()
	}
}

func (c *Connection) sendState(round roundInfo, snap game.Snapshot) {
	msg, err := NewMessage(MessageTypeState, StateData{Round: round.number, RoundID: round.id, State: snap})
	if err != nil {
		c.logger.Error("Failed to create state message", "error", err)
		return
	}
	_ = c.SendMessage(msg) // Ignore send errors, the read pump notices a dead peer
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}
