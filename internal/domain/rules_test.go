package domain

import "testing"

// fill places pieces straight into the grid, bottom-up per column.
func fill(t *testing.T, b *Board, player PlayerID, cells ...Position) {
	t.Helper()
	for _, p := range cells {
		b.cells[p.Row][p.Column] = player
	}
}

func TestCheckWinDirections(t *testing.T) {
	tests := []struct {
		name  string
		cells []Position
	}{
		{"horizontal", []Position{{5, 0}, {5, 1}, {5, 2}, {5, 3}}},
		{"horizontal at right edge", []Position{{2, 3}, {2, 4}, {2, 5}, {2, 6}}},
		{"vertical", []Position{{5, 6}, {4, 6}, {3, 6}, {2, 6}}},
		{"vertical at top", []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"diagonal down right", []Position{{1, 2}, {2, 3}, {3, 4}, {4, 5}}},
		{"diagonal down left", []Position{{2, 6}, {3, 5}, {4, 4}, {5, 3}}},
		{"diagonal down left at left edge", []Position{{0, 3}, {1, 2}, {2, 1}, {3, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, 7, 6)
			fill(t, b, Player2, tt.cells...)

			if !CheckWin(b, Player2) {
				t.Errorf("Expected a win for player 2")
			}
			if CheckWin(b, Player1) {
				t.Errorf("Player 1 should not win with player 2's pieces")
			}

			run, ok := FindRun(b, Player2)
			if !ok || len(run) != ToWin {
				t.Fatalf("Expected a run of %d, got %v", ToWin, run)
			}
			for _, p := range run {
				if b.cells[p.Row][p.Column] != Player2 {
					t.Errorf("Run includes %v which is not player 2's", p)
				}
			}
		})
	}
}

func TestCheckWinNoRun(t *testing.T) {
	tests := []struct {
		name  string
		cells []Position
	}{
		{"three horizontal", []Position{{5, 0}, {5, 1}, {5, 2}}},
		{"broken horizontal", []Position{{5, 0}, {5, 1}, {5, 3}, {5, 4}}},
		{"three vertical", []Position{{5, 4}, {4, 4}, {3, 4}}},
		{"bent line", []Position{{5, 0}, {4, 1}, {3, 2}, {3, 3}}},
		{"empty board", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, 7, 6)
			fill(t, b, Player1, tt.cells...)
			if CheckWin(b, Player1) {
				t.Errorf("Unexpected win")
			}
		})
	}

	if CheckWin(mustBoard(t, 7, 6), Empty) {
		t.Errorf("Empty cells must never count as a run")
	}
}

func TestCheckWinMixedOwners(t *testing.T) {
	b := mustBoard(t, 7, 6)
	fill(t, b, Player1, Position{5, 0}, Position{5, 1}, Position{5, 3})
	fill(t, b, Player2, Position{5, 2})

	if CheckWin(b, Player1) || CheckWin(b, Player2) {
		t.Errorf("A run with mixed owners must not win")
	}
}

func TestAdvanceTurn(t *testing.T) {
	g := newTestGame(t)
	if g.ActivePlayer().ID != Player1 {
		t.Fatalf("Player 1 should start")
	}

	AdvanceTurn(g)
	if g.ActivePlayer().ID != Player2 {
		t.Errorf("Expected player 2, got %d", g.ActivePlayer().ID)
	}
	AdvanceTurn(g)
	if g.ActivePlayer().ID != Player1 {
		t.Errorf("Expected player 1, got %d", g.ActivePlayer().ID)
	}

	g.status = StatusDraw
	AdvanceTurn(g)
	if g.ActivePlayer().ID != Player1 {
		t.Errorf("AdvanceTurn must not change a finished game")
	}
}

func TestResolveOutcome(t *testing.T) {
	g := newTestGame(t)
	fill(t, g.board, Player1, Position{5, 0}, Position{5, 1}, Position{5, 2})
	ResolveOutcome(g, Player1)
	if g.IsTerminal() || g.ActivePlayer().ID != Player2 {
		t.Fatalf("Expected game to continue with player 2, got %+v", g.Outcome())
	}

	fill(t, g.board, Player1, Position{5, 3})
	ResolveOutcome(g, Player1)
	if g.Outcome() != (Outcome{Status: StatusWon, Winner: Player1}) {
		t.Errorf("Expected player 1 to win, got %+v", g.Outcome())
	}
	if len(g.WinningLine()) != ToWin {
		t.Errorf("Expected a winning line, got %v", g.WinningLine())
	}
}
