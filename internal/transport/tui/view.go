package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginLeft(2)

	textStyle = lipgloss.NewStyle().
		MarginLeft(2)

	boardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		MarginLeft(2)

	emptyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	noticeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		MarginLeft(2)

	endStyle = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		MarginLeft(2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("205"))
)

const (
	pieceGlyph   = "●"
	winningGlyph = "◉"
	emptyGlyph   = "·"
	cursorGlyph  = "▼"
)

func pieceStyle(p domain.Player) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color))
}

func (m Model) View() string {
	var (
		board   string
		status  string
		over    string
		columns int
	)

	m.session.View(func(g *domain.Game) {
		columns = g.Columns()
		board = m.renderBoard(g)
		status = m.renderStatus(g)
		over = renderOutcome(g)
	})

	content := []string{
		titleStyle.Render("Connect Four"),
		"",
		status,
		"",
		textStyle.Render(m.renderCursor(columns)),
		board,
		textStyle.Render(renderColumnNumbers(columns)),
	}

	if over != "" {
		content = append(content, "", endStyle.Render(over))
	}
	if m.notice != "" {
		content = append(content, "", noticeStyle.Render(m.notice))
	}

	content = append(content,
		"",
		textStyle.Render(emptyStyle.Render("game "+m.session.GameID)),
		textStyle.Render(m.help.View(m.keys)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

func (m Model) renderCursor(columns int) string {
	cells := make([]string, columns)
	for c := range cells {
		cells[c] = " "
	}
	if !m.pending && m.cursor >= 0 && m.cursor < columns {
		cells[m.cursor] = cursorGlyph
	}
	// line up with the board's border and padding
	return "  " + strings.Join(cells, " ")
}

func renderColumnNumbers(columns int) string {
	nums := make([]string, columns)
	for c := range nums {
		nums[c] = fmt.Sprintf("%d", (c+1)%10)
	}
	return "  " + strings.Join(nums, " ")
}

func (m Model) renderBoard(g *domain.Game) string {
	winning := map[domain.Position]bool{}
	for _, p := range g.WinningLine() {
		winning[p] = true
	}

	players := g.Players()
	grid := g.Grid()
	rows := make([]string, len(grid))
	for r, row := range grid {
		cells := make([]string, len(row))
		for c, id := range row {
			if id == domain.Empty {
				cells[c] = emptyStyle.Render(emptyGlyph)
				continue
			}
			glyph := pieceGlyph
			style := pieceStyle(players[id-1])
			if winning[domain.Position{Row: r, Column: c}] {
				glyph = winningGlyph
				style = style.Bold(true)
			}
			cells[c] = style.Render(glyph)
		}
		rows[r] = strings.Join(cells, " ")
	}

	return boardStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderStatus(g *domain.Game) string {
	if g.IsTerminal() {
		return textStyle.Render(fmt.Sprintf("Move %d", g.MoveCount()))
	}

	active := g.ActivePlayer()
	turn := pieceStyle(active).Render(pieceGlyph + " " + active.Name)
	line := fmt.Sprintf("%s to move · move %d", turn, g.MoveCount()+1)
	if m.last != nil {
		line += fmt.Sprintf(" · last drop: column %d", m.last.Column+1)
	}
	return textStyle.Render(line)
}

// renderOutcome is the end-of-game notice, empty while the game is on.
func renderOutcome(g *domain.Game) string {
	outcome := g.Outcome()
	switch outcome.Status {
	case domain.StatusWon:
		winner, _ := g.Player(outcome.Winner)
		return fmt.Sprintf("%s wins! Press n for a new game or q to quit.", winner.Name)
	case domain.StatusDraw:
		return "Tie game! Press n for a new game or q to quit."
	}
	return ""
}
