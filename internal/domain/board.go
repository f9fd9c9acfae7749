package domain

import "fmt"

// Board is the occupancy grid. Row 0 is the top row, so pieces fall towards
// the highest row index.
type Board struct {
	rows    int
	columns int
	cells   [][]PlayerID
}

func NewBoard(columns, rows int) (*Board, error) {
	if columns < ToWin || rows < ToWin {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, columns, rows)
	}

	cells := make([][]PlayerID, rows)
	for i := range cells {
		cells[i] = make([]PlayerID, columns)
	}
	return &Board{rows: rows, columns: columns, cells: cells}, nil
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Columns() int { return b.columns }

func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.rows && column >= 0 && column < b.columns
}

func (b *Board) Cell(row, column int) (PlayerID, error) {
	if !b.InBounds(row, column) {
		return Empty, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, column)
	}
	return b.cells[row][column], nil
}

// FindLandingRow returns the row a piece dropped in column would settle in.
func (b *Board) FindLandingRow(column int) (int, error) {
	if column < 0 || column >= b.columns {
		return -1, fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}

	// shifting from the bottom row up till we find a hole
	for row := b.rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// Place writes player into an empty cell. The row must come from
// FindLandingRow on the current board: a cell that is taken, or that has an
// empty cell below it, is rejected.
func (b *Board) Place(row, column int, player PlayerID) error {
	if player != Player1 && player != Player2 {
		return fmt.Errorf("%w: unknown player %d", ErrIllegalPlacement, player)
	}
	if !b.InBounds(row, column) {
		return fmt.Errorf("%w: (%d, %d) is off the board", ErrIllegalPlacement, row, column)
	}
	if b.cells[row][column] != Empty {
		return fmt.Errorf("%w: (%d, %d) is taken", ErrIllegalPlacement, row, column)
	}
	if row < b.rows-1 && b.cells[row+1][column] == Empty {
		return fmt.Errorf("%w: (%d, %d) would float", ErrIllegalPlacement, row, column)
	}

	b.cells[row][column] = player
	return nil
}

func (b *Board) IsFull() bool {
	for _, row := range b.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// ValidMoves lists the columns that still have room.
func (b *Board) ValidMoves() []int {
	moves := []int{}
	for col := 0; col < b.columns; col++ {
		if b.cells[0][col] == Empty {
			moves = append(moves, col)
		}
	}
	return moves
}

func (b *Board) PieceCount() int {
	count := 0
	for _, row := range b.cells {
		for _, cell := range row {
			if cell != Empty {
				count++
			}
		}
	}
	return count
}

// this creates a deep copy of the grid
func (b *Board) Snapshot() [][]PlayerID {
	grid := make([][]PlayerID, len(b.cells))
	for i := range b.cells {
		grid[i] = make([]PlayerID, len(b.cells[i]))
		copy(grid[i], b.cells[i])
	}
	return grid
}
