package domain

import "time"

// GameRecord is the summary of a finished game kept in the history store.
type GameRecord struct {
	GameID          string
	Player1         Player
	Player2         Player
	Outcome         Outcome
	TotalMoves      int
	DurationSeconds int
	Board           [][]PlayerID
	CreatedAt       time.Time
	FinishedAt      time.Time
}

// WinnerName is the winner's name, or "" for a draw.
func (r GameRecord) WinnerName() string {
	switch {
	case r.Outcome.Status != StatusWon:
		return ""
	case r.Outcome.Winner == Player1:
		return r.Player1.Name
	default:
		return r.Player2.Name
	}
}

// Reason is the short label stored next to the result.
func (r GameRecord) Reason() string {
	if r.Outcome.Status == StatusDraw {
		return "draw"
	}
	return "four_in_a_row"
}

// PlayerStats is one leaderboard row.
type PlayerStats struct {
	Name        string
	Rating      int
	GamesPlayed int
	GamesWon    int
	GamesDrawn  int
}
