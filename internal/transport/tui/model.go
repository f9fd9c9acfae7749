package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

// Model is the terminal front end: it maps keys to columns, asks the session
// to drop, and draws whatever comes back. At most one drop is in flight.
type Model struct {
	ctx     context.Context
	svc     *game.Service
	session *game.Session
	log     *zap.SugaredLogger

	cursor  int
	pending bool
	last    *domain.PlacementResult
	notice  string

	keys  keyMap
	help  help.Model
	width int
}

type droppedMsg struct {
	column int
	result domain.PlacementResult
	err    error
}

type rematchMsg struct {
	session *game.Session
	err     error
}

func New(ctx context.Context, svc *game.Service, session *game.Session, log *zap.SugaredLogger) Model {
	m := Model{
		ctx:     ctx,
		svc:     svc,
		session: session,
		log:     log,
		keys:    keys,
		help:    help.New(),
	}
	m.cursor = m.columns() / 2
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case droppedMsg:
		m.pending = false
		if msg.err != nil {
			m.notice = dropNotice(msg.column, msg.err)
			return m, nil
		}
		res := msg.result
		m.last = &res
		m.notice = ""
		m.cursor = m.nearestOpen(m.cursor)
		return m, nil

	case rematchMsg:
		m.pending = false
		if msg.err != nil {
			m.log.Errorw("could not start rematch", zap.Error(msg.err))
			m.notice = "Could not start a new game: " + msg.err.Error()
			return m, nil
		}
		m.session = msg.session
		m.last = nil
		m.notice = ""
		m.cursor = m.columns() / 2
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Right):
		if m.cursor < m.columns()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Column):
		col := int(msg.String()[0] - '1')
		if col >= m.columns() {
			return m, nil
		}
		m.cursor = col
		return m.drop(col)

	case key.Matches(msg, m.keys.Drop):
		return m.drop(m.cursor)

	case key.Matches(msg, m.keys.NewGame):
		if m.pending || !m.session.IsTerminal() {
			return m, nil
		}
		m.pending = true
		return m, m.rematch()
	}

	return m, nil
}

// drop ignores input while a previous drop is still being applied and once
// the game is over; the end-of-game notice stays up until a new game starts.
func (m Model) drop(column int) (tea.Model, tea.Cmd) {
	if m.pending || m.session.IsTerminal() {
		return m, nil
	}
	m.pending = true

	session, ctx := m.session, m.ctx
	return m, func() tea.Msg {
		res, err := session.Drop(ctx, column)
		return droppedMsg{column: column, result: res, err: err}
	}
}

func (m Model) rematch() tea.Cmd {
	svc, prev, ctx := m.svc, m.session, m.ctx
	return func() tea.Msg {
		next, err := svc.Rematch(ctx, prev)
		return rematchMsg{session: next, err: err}
	}
}

func (m Model) columns() int {
	var n int
	m.session.View(func(g *domain.Game) { n = g.Columns() })
	return n
}

// nearestOpen moves col off a full column while the game is still running.
// Ties go to the left.
func (m Model) nearestOpen(col int) int {
	var open []int
	m.session.View(func(g *domain.Game) {
		if !g.IsTerminal() {
			open = g.ValidMoves()
		}
	})
	if len(open) == 0 {
		return col
	}

	best := open[0]
	for _, c := range open {
		if distance(c, col) < distance(best, col) {
			best = c
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Session is the game currently on screen.
func (m Model) Session() *game.Session {
	return m.session
}

func dropNotice(column int, err error) string {
	switch {
	case errors.Is(err, domain.ErrColumnFull):
		return fmt.Sprintf("Column %d is full, pick another one.", column+1)
	case errors.Is(err, domain.ErrGameAlreadyOver):
		return "The game is over. Press n for a new one."
	case errors.Is(err, domain.ErrInvalidColumn):
		return fmt.Sprintf("There is no column %d.", column+1)
	default:
		return "Could not drop: " + err.Error()
	}
}
