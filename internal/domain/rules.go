package domain

// directions a run can extend in from its first cell: right, down,
// down-right and down-left. Every run is found from one of its two ends.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// CheckWin reports whether player owns ToWin aligned cells anywhere on the
// board.
func CheckWin(board *Board, player PlayerID) bool {
	_, ok := FindRun(board, player)
	return ok
}

// FindRun scans every cell as a potential run start and returns the
// positions of the first run owned by player.
func FindRun(board *Board, player PlayerID) ([]Position, bool) {
	if player == Empty {
		return nil, false
	}

	for row := 0; row < board.rows; row++ {
		for col := 0; col < board.columns; col++ {
			for _, d := range directions {
				if runAt(board, row, col, d[0], d[1], player) {
					run := make([]Position, ToWin)
					for i := range run {
						run[i] = Position{Row: row + i*d[0], Column: col + i*d[1]}
					}
					return run, true
				}
			}
		}
	}

	return nil, false
}

// runAt checks the ToWin cells starting at (row, col) along (dRow, dCol).
// Candidates that leave the board are simply not a match.
func runAt(board *Board, row, col, dRow, dCol int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+i*dRow, col+i*dCol
		if !board.InBounds(r, c) || board.cells[r][c] != player {
			return false
		}
	}
	return true
}

// AdvanceTurn hands the move to the other player. It does nothing once the
// game is over.
func AdvanceTurn(g *Game) {
	if g.IsTerminal() {
		return
	}
	g.active = 1 - g.active
}

// ResolveOutcome settles the game after justMoved placed a piece. Only the
// mover can have completed a run, and a win on the last free cell is still a
// win.
func ResolveOutcome(g *Game, justMoved PlayerID) {
	if run, ok := FindRun(g.board, justMoved); ok {
		g.status = StatusWon
		g.winner = justMoved
		g.winningLine = run
		return
	}

	if g.board.IsFull() {
		g.status = StatusDraw
		return
	}

	AdvanceTurn(g)
}
