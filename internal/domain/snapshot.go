package domain

import (
	"errors"
	"fmt"
)

// Snapshot is a serialisable copy of a game's current position. It carries
// no move history.
type Snapshot struct {
	Columns   int          `json:"columns"`
	Rows      int          `json:"rows"`
	Players   [2]Player    `json:"players"`
	Active    PlayerID     `json:"active"`
	Status    GameStatus   `json:"status"`
	Winner    PlayerID     `json:"winner"`
	MoveCount int          `json:"move_count"`
	Cells     [][]PlayerID `json:"cells"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Columns:   g.board.columns,
		Rows:      g.board.rows,
		Players:   g.players,
		Active:    g.players[g.active].ID,
		Status:    g.status,
		Winner:    g.winner,
		MoveCount: g.moveCount,
		Cells:     g.board.Snapshot(),
	}
}

// RestoreGame rebuilds a game from a snapshot. The grid has to be reachable
// by legal play: no floating pieces, player 1 never more than one piece
// ahead, and the recorded status, winner and turn must match the board.
func RestoreGame(s Snapshot) (*Game, error) {
	g, err := NewGame(s.Players[0], s.Players[1], s.Columns, s.Rows)
	if err != nil {
		return nil, corrupt("%v", err)
	}

	if len(s.Cells) != s.Rows {
		return nil, corrupt("got %d rows, want %d", len(s.Cells), s.Rows)
	}
	for r, row := range s.Cells {
		if len(row) != s.Columns {
			return nil, corrupt("row %d has %d cells, want %d", r, len(row), s.Columns)
		}
	}

	// placing bottom-up keeps Place's gravity check honest
	counts := map[PlayerID]int{}
	for r := s.Rows - 1; r >= 0; r-- {
		for c := 0; c < s.Columns; c++ {
			id := s.Cells[r][c]
			if id == Empty {
				continue
			}
			if err := g.board.Place(r, c, id); err != nil {
				return nil, corrupt("%v", err)
			}
			counts[id]++
		}
	}

	diff := counts[Player1] - counts[Player2]
	if diff != 0 && diff != 1 {
		return nil, corrupt("player 1 has %d pieces, player 2 has %d", counts[Player1], counts[Player2])
	}
	total := counts[Player1] + counts[Player2]
	if s.MoveCount != total {
		return nil, corrupt("move count %d, board has %d pieces", s.MoveCount, total)
	}
	g.moveCount = total

	win1, win2 := CheckWin(g.board, Player1), CheckWin(g.board, Player2)
	switch {
	case win1 && win2:
		return nil, corrupt("both players have a run")
	case win1 || win2:
		winner := Player1
		if win2 {
			winner = Player2
		}
		// the winner made the last move
		if (winner == Player1) != (diff == 1) {
			return nil, corrupt("player %d won out of turn", winner)
		}
		if s.Status != StatusWon || s.Winner != winner {
			return nil, corrupt("board is won by player %d, snapshot says %s", winner, s.Status)
		}
		if !couldHaveFinished(g.board, winner) {
			return nil, corrupt("no top piece of player %d completes the run", winner)
		}
		g.status = StatusWon
		g.winner = winner
		g.winningLine, _ = FindRun(g.board, winner)
		g.active = int(winner) - 1
	case g.board.IsFull():
		if s.Status != StatusDraw || s.Winner != Empty {
			return nil, corrupt("board is full, snapshot says %s", s.Status)
		}
		g.status = StatusDraw
		g.active = 1 - diff
	default:
		if s.Status != StatusActive || s.Winner != Empty {
			return nil, corrupt("board is still open, snapshot says %s", s.Status)
		}
		// player 1 is to move whenever the piece counts are level
		g.active = diff
		if s.Active != g.players[g.active].ID {
			return nil, corrupt("player %d to move, snapshot says %d", g.players[g.active].ID, s.Active)
		}
	}

	return g, nil
}

// couldHaveFinished reports whether taking back one of winner's top pieces
// leaves a board without a run for winner.
func couldHaveFinished(b *Board, winner PlayerID) bool {
	for c := 0; c < b.columns; c++ {
		for r := 0; r < b.rows; r++ {
			id := b.cells[r][c]
			if id == Empty {
				continue
			}
			if id == winner {
				b.cells[r][c] = Empty
				open := !CheckWin(b, winner)
				b.cells[r][c] = winner
				if open {
					return true
				}
			}
			break
		}
	}
	return false
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}

// IsCorrupt reports whether err came from RestoreGame rejecting its input.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptSnapshot)
}
