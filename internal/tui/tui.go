// Package tui is the interactive terminal front end. It asks for a player
// count, then deals on a timer and waits for h/s whenever the human seat has
// to decide.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/simplejack/internal/deck"
	"github.com/lox/simplejack/internal/game"
	"github.com/lox/simplejack/internal/table"
)

type screen int

const (
	screenSetup screen = iota
	screenTable
)

// tickMsg drives one automatic engine step. Ticks from an earlier
// schedule carry a stale gen and are dropped.
type tickMsg struct {
	gen int
}

// Model is the Bubble Tea model for a single table
type Model struct {
	engine *game.Engine
	logger *log.Logger
	speed  table.Speed

	// UI components
	playersInput textinput.Model
	logViewport  viewport.Model

	screen   screen
	gen      int
	status   string
	quitting bool

	// Dimensions
	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithSpeed sets the dealing speed
func WithSpeed(speed table.Speed) Option {
	return func(m *Model) { m.speed = speed }
}

// WithLogger sets the model logger
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger.WithPrefix("tui") }
}

// WithPlayers pre-fills the player count
func WithPlayers(players int) Option {
	return func(m *Model) { m.playersInput.SetValue(strconv.Itoa(players)) }
}

// NewModel creates a model that plays rounds on engine
func NewModel(engine *game.Engine, opts ...Option) *Model {
	vp := viewport.New(60, 10)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%d-%d", game.MinPlayers, game.MaxPlayers)
	ti.Focus()
	ti.CharLimit = 1
	ti.Width = 10
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "Players: "

	m := &Model{
		engine:       engine,
		logger:       log.New(io.Discard),
		speed:        table.SpeedNormal,
		playersInput: ti,
		logViewport:  vp,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = max(msg.Width-4, 10)
		m.logViewport.Height = max(msg.Height-game.MaxPlayers-12, 3)
		return m, nil

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.advance()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.quit()
		}
		if m.screen == screenTable {
			return m, m.handleTableKey(msg)
		}
		if msg.Type == tea.KeyEnter {
			return m, m.start()
		}
	}

	var cmd tea.Cmd
	if m.screen == screenSetup {
		m.playersInput, cmd = m.playersInput.Update(msg)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.gen++
	return m, tea.Quit
}

func (m *Model) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		_, cmd := m.quit()
		return cmd
	case "h":
		return m.decide(m.engine.Hit)
	case "s":
		return m.decide(m.engine.Stand)
	case "n":
		m.newRound()
		return textinput.Blink
	case "f":
		m.speed = nextSpeed(m.speed)
		m.status = "Dealing speed: " + m.speed.String()
		return nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return cmd
}

// start parses the player count and deals a fresh round
func (m *Model) start() tea.Cmd {
	players, err := strconv.Atoi(strings.TrimSpace(m.playersInput.Value()))
	if err != nil {
		m.status = fmt.Sprintf("Enter a number of players between %d and %d", game.MinPlayers, game.MaxPlayers)
		return nil
	}
	if err := m.engine.StartRound(players, nil); err != nil {
		m.status = err.Error()
		return nil
	}

	m.logger.Info("Round started", "players", players, "speed", m.speed)
	m.screen = screenTable
	m.status = ""
	m.playersInput.Blur()
	m.refresh()
	return m.schedule()
}

func (m *Model) newRound() {
	m.gen++
	m.engine.Reset()
	m.screen = screenSetup
	m.status = ""
	m.playersInput.Focus()
	m.refresh()
}

func (m *Model) decide(apply func() error) tea.Cmd {
	if err := apply(); err != nil {
		if errors.Is(err, game.ErrNotAwaitingDecision) {
			m.status = "Wait for your turn"
		} else {
			m.status = err.Error()
		}
		return nil
	}
	m.status = ""
	m.refresh()
	return m.schedule()
}

func (m *Model) advance() tea.Cmd {
	if err := m.engine.Advance(); err != nil {
		m.logger.Error("Round aborted", "error", err)
		m.status = err.Error()
		m.refresh()
		return nil
	}
	m.refresh()
	return m.schedule()
}

// schedule arms the next tick if the engine has automatic work to do
func (m *Model) schedule() tea.Cmd {
	m.gen++
	phase := m.engine.Phase()
	if phase != game.PhaseDealing && phase != game.PhaseResolving {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.speed.Interval(), func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) refresh() {
	snap := m.engine.Snapshot()
	m.logViewport.SetContent(strings.Join(snap.Commentary, "\n"))
	m.logViewport.GotoTop()
}

func nextSpeed(s table.Speed) table.Speed {
	speeds := table.Speeds()
	for i, speed := range speeds {
		if speed == s {
			return speeds[(i+1)%len(speeds)]
		}
	}
	return table.SpeedNormal
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Simple Jack"))
	b.WriteString("\n\n")

	if m.screen == screenSetup {
		b.WriteString(m.playersInput.View())
		b.WriteString("\n\n")
		if m.status != "" {
			b.WriteString(BustStyle.Render(m.status))
			b.WriteString("\n")
		}
		b.WriteString(InfoStyle.Render("Enter to deal • Esc to quit"))
		return b.String()
	}

	snap := m.engine.Snapshot()
	b.WriteString(m.renderSeats(snap))
	b.WriteString("\n")
	if banner := renderBanner(snap); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	b.WriteString(PaneStyle.Render(m.logViewport.View()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(PushStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp(snap))
	return b.String()
}

func (m *Model) renderSeats(snap game.Snapshot) string {
	var b strings.Builder
	for i, seat := range snap.Seats {
		marker := "  "
		style := SeatStyle
		if i == snap.CurrentSeat && !snap.GameOver {
			marker = "> "
			style = CurrentSeatStyle
		}

		line := fmt.Sprintf("%s%-10s %s %s", marker, seat.Label, formatCards(seat.Cards), ScoreStyle.Render(strconv.Itoa(seat.Score)))
		switch {
		case seat.Eliminated:
			line += " " + BustStyle.Render("BUST")
		case seat.Stood:
			line += " " + InfoStyle.Render("STAND")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Cards left: %d", snap.CardsRemaining)))
	b.WriteString("\n")
	return b.String()
}

func renderBanner(snap game.Snapshot) string {
	switch {
	case !snap.GameOver:
		return ""
	case snap.PushMessage != "":
		return PushStyle.Render(snap.PushMessage)
	case snap.HasSummary:
		return WinnerStyle.Render(snap.Summary)
	}
	return ""
}

func (m *Model) renderHelp(snap game.Snapshot) string {
	if snap.AwaitingDecision() {
		return ActionsStyle.Render("[h] hit  [s] stand") + "  " + InfoStyle.Render("q quit")
	}
	return InfoStyle.Render(fmt.Sprintf("n new round • f speed (%s) • q quit", m.speed))
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.Short()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.Short()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
