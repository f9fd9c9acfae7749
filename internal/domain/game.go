package domain

import "fmt"

// Game is a single Connect Four session. It is only mutated through
// DropPiece.
type Game struct {
	board       *Board
	players     [2]Player
	active      int // index into players
	status      GameStatus
	winner      PlayerID
	winningLine []Position
	moveCount   int
}

// NewGame creates a game where p1 moves first.
func NewGame(p1, p2 Player, columns, rows int) (*Game, error) {
	if p1.ID != Player1 || p2.ID != Player2 {
		return nil, fmt.Errorf("%w: got %d and %d", ErrInvalidPlayers, p1.ID, p2.ID)
	}

	board, err := NewBoard(columns, rows)
	if err != nil {
		return nil, err
	}

	return &Game{
		board:   board,
		players: [2]Player{p1, p2},
		active:  0,
		status:  StatusActive,
		winner:  Empty,
	}, nil
}

func NewStandardGame(p1, p2 Player) (*Game, error) {
	return NewGame(p1, p2, DefaultColumns, DefaultRows)
}

// DropPiece drops the active player's piece into column. A failed drop
// leaves the game untouched.
func (g *Game) DropPiece(column int) (PlacementResult, error) {
	if g.IsTerminal() {
		return PlacementResult{}, ErrGameAlreadyOver
	}

	row, err := g.board.FindLandingRow(column)
	if err != nil {
		return PlacementResult{}, err
	}

	mover := g.players[g.active].ID
	if err := g.board.Place(row, column, mover); err != nil {
		// the row came straight from FindLandingRow, so this is a bug in the board
		panic(fmt.Sprintf("connect4: placing at landing row: %v", err))
	}
	g.moveCount++

	ResolveOutcome(g, mover)

	return PlacementResult{
		Row:     row,
		Column:  column,
		Player:  mover,
		Outcome: g.Outcome(),
	}, nil
}

// Rematch builds a fresh game with the same players and board size.
func (g *Game) Rematch() (*Game, error) {
	return NewGame(g.players[0], g.players[1], g.board.columns, g.board.rows)
}

func (g *Game) Cell(row, column int) (PlayerID, error) {
	return g.board.Cell(row, column)
}

func (g *Game) ActivePlayer() Player {
	return g.players[g.active]
}

func (g *Game) Players() [2]Player {
	return g.players
}

// Player looks up a seat by id.
func (g *Game) Player(id PlayerID) (Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (g *Game) IsTerminal() bool {
	return g.status == StatusWon || g.status == StatusDraw
}

func (g *Game) Outcome() Outcome {
	return Outcome{Status: g.status, Winner: g.winner}
}

// WinningLine returns the run that ended the game, or nil.
func (g *Game) WinningLine() []Position {
	if g.winningLine == nil {
		return nil
	}
	line := make([]Position, len(g.winningLine))
	copy(line, g.winningLine)
	return line
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) Rows() int { return g.board.rows }
func (g *Game) Columns() int { return g.board.columns }
func (g *Game) ValidMoves() []int { return g.board.ValidMoves() }
func (g *Game) Grid() [][]PlayerID { return g.board.Snapshot() }
