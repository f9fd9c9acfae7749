package domain

import (
	"errors"
	"testing"
)

func mustBoard(t *testing.T, columns, rows int) *Board {
	t.Helper()
	b, err := NewBoard(columns, rows)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", columns, rows, err)
	}
	return b
}

func TestNewBoardDimensions(t *testing.T) {
	tests := []struct {
		columns, rows int
		wantErr       bool
	}{
		{7, 6, false},
		{4, 4, false},
		{10, 9, false},
		{3, 6, true},
		{7, 3, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		_, err := NewBoard(tt.columns, tt.rows)
		if tt.wantErr && !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewBoard(%d, %d): expected ErrInvalidDimensions, got %v", tt.columns, tt.rows, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("NewBoard(%d, %d): unexpected error %v", tt.columns, tt.rows, err)
		}
	}
}

func TestFindLandingRow(t *testing.T) {
	b := mustBoard(t, 7, 6)

	for want := 5; want >= 0; want-- {
		row, err := b.FindLandingRow(2)
		if err != nil {
			t.Fatalf("FindLandingRow: %v", err)
		}
		if row != want {
			t.Fatalf("Expected landing row %d, got %d", want, row)
		}
		if err := b.Place(row, 2, Player1); err != nil {
			t.Fatalf("Place: %v", err)
		}
	}

	if _, err := b.FindLandingRow(2); !errors.Is(err, ErrColumnFull) {
		t.Errorf("Expected ErrColumnFull, got %v", err)
	}

	for _, col := range []int{-1, 7, 100} {
		if _, err := b.FindLandingRow(col); !errors.Is(err, ErrInvalidColumn) {
			t.Errorf("Column %d: expected ErrInvalidColumn, got %v", col, err)
		}
	}
}

func TestPlaceRejectsIllegalCells(t *testing.T) {
	b := mustBoard(t, 7, 6)
	if err := b.Place(5, 0, Player1); err != nil {
		t.Fatalf("Place: %v", err)
	}

	tests := []struct {
		name     string
		row, col int
		player   PlayerID
	}{
		{"occupied", 5, 0, Player2},
		{"floating", 3, 1, Player1},
		{"stale row", 3, 0, Player2},
		{"off board", 6, 0, Player1},
		{"negative column", 5, -1, Player1},
		{"empty player", 5, 1, Empty},
		{"unknown player", 5, 1, PlayerID(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Place(tt.row, tt.col, tt.player); !errors.Is(err, ErrIllegalPlacement) {
				t.Errorf("Expected ErrIllegalPlacement, got %v", err)
			}
		})
	}

	if b.PieceCount() != 1 {
		t.Errorf("Rejected placements changed the board: %d pieces", b.PieceCount())
	}
}

func TestIsFull(t *testing.T) {
	b := mustBoard(t, 4, 4)
	for col := 0; col < 4; col++ {
		for row := 3; row >= 0; row-- {
			if b.IsFull() {
				t.Fatalf("Board reported full with (%d, %d) empty", row, col)
			}
			if err := b.Place(row, col, Player1); err != nil {
				t.Fatalf("Place: %v", err)
			}
		}
	}
	if !b.IsFull() {
		t.Errorf("Expected board to be full")
	}
	if len(b.ValidMoves()) != 0 {
		t.Errorf("Expected no valid moves, got %v", b.ValidMoves())
	}
}

func TestValidMoves(t *testing.T) {
	b := mustBoard(t, 4, 4)
	for row := 3; row >= 0; row-- {
		if err := b.Place(row, 1, Player2); err != nil {
			t.Fatalf("Place: %v", err)
		}
	}

	got := b.ValidMoves()
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b := mustBoard(t, 7, 6)
	grid := b.Snapshot()
	grid[5][0] = Player1

	if cell, _ := b.Cell(5, 0); cell != Empty {
		t.Errorf("Mutating a snapshot changed the board")
	}
	if _, err := b.Cell(6, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}
