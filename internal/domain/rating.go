package domain

import "math"

const (
	KFactor       = 32.0
	InitialRating = 1200
)

// UpdateRatings applies one finished game to the Elo ratings of player 1
// and player 2 and returns their new values.
func UpdateRatings(rating1, rating2 int, outcome Outcome) (int, int) {
	score1 := 0.5
	switch {
	case outcome.Status == StatusWon && outcome.Winner == Player1:
		score1 = 1.0
	case outcome.Status == StatusWon && outcome.Winner == Player2:
		score1 = 0.0
	}

	return nextRating(rating1, rating2, score1), nextRating(rating2, rating1, 1.0-score1)
}

func nextRating(own, opponent int, score float64) int {
	expected := 1.0 / (1.0 + math.Pow(10.0, float64(opponent-own)/400.0))
	next := int(math.Round(float64(own) + KFactor*(score-expected)))
	if next < 0 {
		return 0
	}
	return next
}
