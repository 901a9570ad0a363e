package tui

import (
	"time"

	"go-match/internal/config"
	"go-match/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// helpHeight is the number of rows kept below the board for the help bar.
const helpHeight = 1

type TickMsg time.Time

func tickCmd(rate time.Duration) tea.Cmd {
	return tea.Tick(rate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the bubbletea model around one game controller.
type Model struct {
	ctrl     *state.Controller
	cfg      config.Config
	styles   Styles
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	cursor   int
	tickRate time.Duration
	last     time.Time
}

// NewModel creates a model for a width x height terminal.
func NewModel(ctrl *state.Controller, cfg config.Config, styles Styles, width, height int) *Model {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := &Model{
		ctrl:     ctrl,
		cfg:      cfg,
		styles:   styles,
		keys:     DefaultKeyMap(),
		help:     h,
		tickRate: cfg.Timing.TickRate,
	}
	if m.tickRate <= 0 {
		m.tickRate = 50 * time.Millisecond
	}
	m.resize(width, height)
	return m
}

// Controller returns the wrapped controller.
func (m *Model) Controller() *state.Controller {
	return m.ctrl
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.ctrl.Resize(width, max(height-helpHeight, 1))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		now := time.Time(msg)
		if !m.last.IsZero() {
			m.ctrl.Tick(now.Sub(m.last))
		}
		m.last = now
		if m.ctrl.Quitting() {
			return m, tea.Quit
		}
		return m, tickCmd(m.tickRate)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if s := m.ctrl.Session(); s != nil {
			if idx := s.Board.CardAt(msg.X, msg.Y); idx >= 0 {
				m.cursor = idx
			}
		}
		m.ctrl.Handle(state.Click(msg.X, msg.Y))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if state.IsExitRequested(msg.String()) {
		m.ctrl.Handle(state.Quit())
		return m, tea.Quit
	}

	playing := m.ctrl.State() == state.StatePlaying
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case playing && key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
		return m, nil
	case playing && key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
		return m, nil
	case playing && key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
		return m, nil
	case playing && key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
		return m, nil
	}

	in, ok := state.InputForKey(msg.String())
	if !ok {
		return m, nil
	}
	switch {
	case in.Kind == state.InputConfirm && playing:
		m.flipCursor()
	case in.Kind == state.InputConfirm:
		m.ctrl.Handle(in)
		if m.ctrl.State() == state.StatePlaying {
			m.cursor = 0
		}
	default:
		m.ctrl.Handle(in)
	}
	if m.ctrl.Quitting() {
		return m, tea.Quit
	}
	return m, nil
}

// flipCursor clicks the center of the card under the keyboard cursor.
func (m *Model) flipCursor() {
	cards := m.ctrl.Snapshot().Cards
	if m.cursor < 0 || m.cursor >= len(cards) {
		return
	}
	x, y := cards[m.cursor].Position.Center()
	m.ctrl.Handle(state.Click(x, y))
}

func (m *Model) moveCursor(dRow, dCol int) {
	s := m.ctrl.Session()
	if s == nil {
		return
	}
	rows, cols := s.Board.Rows, s.Board.Cols
	row := (m.cursor/cols + dRow + rows) % rows
	col := (m.cursor%cols + dCol + cols) % cols
	m.cursor = row*cols + col
}

// Cursor returns the index of the card under the keyboard cursor.
func (m *Model) Cursor() int {
	return m.cursor
}
