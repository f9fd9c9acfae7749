package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame stores a finished game and updates both players' stats and
// ratings in one transaction. Saving the same game twice is a no-op.
func (r *GameRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	boardJSON, err := json.Marshal(rec.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	var winnerName sql.NullString
	if name := rec.WinnerName(); name != "" {
		winnerName = sql.NullString{String: name, Valid: true}
	}

	query := `
	INSERT INTO game (game_id, player1_name, player1_color, player2_name, player2_color, status, winner, winner_name, reason, total_moves, duration_seconds, created_at, finished_at, board_state)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (game_id) DO NOTHING;
	`

	res, err := tx.ExecContext(ctx, query,
		rec.GameID, rec.Player1.Name, rec.Player1.Color, rec.Player2.Name, rec.Player2.Color,
		string(rec.Outcome.Status), int(rec.Outcome.Winner), winnerName, rec.Reason(),
		rec.TotalMoves, rec.DurationSeconds, rec.CreatedAt, rec.FinishedAt, boardJSON)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// already recorded, stats were counted the first time
		return tx.Commit()
	}

	if err := r.updatePlayersTx(ctx, tx, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// updatePlayersTx bumps both players' counters and applies the rating change.
// A game where both seats have the same name is kept in the history but
// leaves the player's stats and rating alone.
func (r *GameRepo) updatePlayersTx(ctx context.Context, tx *sql.Tx, rec domain.GameRecord) error {
	ensure := `INSERT INTO players (name, rating) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING;`
	for _, name := range []string{rec.Player1.Name, rec.Player2.Name} {
		if _, err := tx.ExecContext(ctx, ensure, name, domain.InitialRating); err != nil {
			return fmt.Errorf("failed to create player %q: %w", name, err)
		}
	}
	if rec.Player1.Name == rec.Player2.Name {
		return nil
	}

	rating1, err := lockRatingTx(ctx, tx, rec.Player1.Name)
	if err != nil {
		return err
	}
	rating2, err := lockRatingTx(ctx, tx, rec.Player2.Name)
	if err != nil {
		return err
	}

	next1, next2 := domain.UpdateRatings(rating1, rating2, rec.Outcome)

	update := `
	UPDATE players
	SET rating = $2,
	    games_played = games_played + 1,
	    games_won = games_won + CASE WHEN $3 THEN 1 ELSE 0 END,
	    games_drawn = games_drawn + CASE WHEN $4 THEN 1 ELSE 0 END
	WHERE name = $1;
	`
	draw := rec.Outcome.Status == domain.StatusDraw
	won1 := rec.Outcome.Status == domain.StatusWon && rec.Outcome.Winner == domain.Player1
	won2 := rec.Outcome.Status == domain.StatusWon && rec.Outcome.Winner == domain.Player2

	if _, err := tx.ExecContext(ctx, update, rec.Player1.Name, next1, won1, draw); err != nil {
		return fmt.Errorf("failed to update player stats in transaction: %w", err)
	}
	if _, err := tx.ExecContext(ctx, update, rec.Player2.Name, next2, won2, draw); err != nil {
		return fmt.Errorf("failed to update player stats in transaction: %w", err)
	}
	return nil
}

func lockRatingTx(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	var rating int
	err := tx.QueryRowContext(ctx, `SELECT rating FROM players WHERE name = $1 FOR UPDATE;`, name).Scan(&rating)
	if err != nil {
		return 0, fmt.Errorf("failed to read rating for %q: %w", name, err)
	}
	return rating, nil
}

const selectGame = `
	SELECT game_id, player1_name, player1_color, player2_name, player2_color,
	       status, winner, total_moves, duration_seconds, created_at, finished_at, board_state
	FROM game
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.GameRecord, error) {
	var rec domain.GameRecord
	var status string
	var winner int
	var boardJSON []byte

	err := row.Scan(
		&rec.GameID,
		&rec.Player1.Name,
		&rec.Player1.Color,
		&rec.Player2.Name,
		&rec.Player2.Color,
		&status,
		&winner,
		&rec.TotalMoves,
		&rec.DurationSeconds,
		&rec.CreatedAt,
		&rec.FinishedAt,
		&boardJSON,
	)
	if err != nil {
		return nil, err
	}

	rec.Player1.ID = domain.Player1
	rec.Player2.ID = domain.Player2
	rec.Outcome = domain.Outcome{Status: domain.GameStatus(status), Winner: domain.PlayerID(winner)}

	if boardJSON != nil {
		if err := json.Unmarshal(boardJSON, &rec.Board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}
	return &rec, nil
}

// GetGameByID returns nil without an error if the game is unknown.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	rec, err := scanGame(r.DB.QueryRowContext(ctx, selectGame+`WHERE game_id = $1;`, gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return rec, nil
}

// RecentGames returns the latest finished games, newest first.
func (r *GameRepo) RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	rows, err := r.DB.QueryContext(ctx, selectGame+`ORDER BY finished_at DESC LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	var games []domain.GameRecord
	for rows.Next() {
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

// Leaderboard returns the best rated players.
func (r *GameRepo) Leaderboard(ctx context.Context, limit int) ([]domain.PlayerStats, error) {
	query := `
	SELECT name, rating, games_played, games_won, games_drawn
	FROM players
	ORDER BY rating DESC, games_won DESC, name
	LIMIT $1;
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []domain.PlayerStats
	for rows.Next() {
		var s domain.PlayerStats
		if err := rows.Scan(&s.Name, &s.Rating, &s.GamesPlayed, &s.GamesWon, &s.GamesDrawn); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
