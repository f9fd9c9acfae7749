package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

func TestApplyOptions(t *testing.T) {
	cfg := &config.Config{
		Columns: 7,
		Rows:    6,
		Player1: domain.Player{ID: domain.Player1, Name: "Player 1", Color: config.DefaultPlayer1Color},
		Player2: domain.Player{ID: domain.Player2, Name: "Player 2", Color: config.DefaultPlayer2Color},
	}

	applyOptions(cfg, options{Columns: 9, Player2Name: "bob", Player1Color: "red", Player2Color: "nonsense"})

	if cfg.Columns != 9 || cfg.Rows != 6 {
		t.Errorf("Expected 9x6, got %dx%d", cfg.Columns, cfg.Rows)
	}
	if cfg.Player2.Name != "bob" || cfg.Player1.Name != "Player 1" {
		t.Errorf("Unexpected names %q, %q", cfg.Player1.Name, cfg.Player2.Name)
	}
	if cfg.Player1.Color != "#FF0000" {
		t.Errorf("Expected red to normalise, got %q", cfg.Player1.Color)
	}
	if cfg.Player2.Color != config.DefaultPlayer2Color {
		t.Errorf("Expected a bad colour to keep the previous one, got %q", cfg.Player2.Color)
	}
}

type historyRepo struct{}

func (historyRepo) SaveGame(ctx context.Context, rec domain.GameRecord) error { return nil }

func (historyRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	return nil, nil
}

func (historyRepo) RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	return []domain.GameRecord{{
		GameID:          "g1",
		Player1:         domain.Player{ID: domain.Player1, Name: "alice"},
		Player2:         domain.Player{ID: domain.Player2, Name: "bob"},
		Outcome:         domain.Outcome{Status: domain.StatusWon, Winner: domain.Player2},
		TotalMoves:      12,
		DurationSeconds: 75,
		FinishedAt:      time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}}, nil
}

func (historyRepo) Leaderboard(ctx context.Context, limit int) ([]domain.PlayerStats, error) {
	return []domain.PlayerStats{{Name: "bob", Rating: 1216, GamesPlayed: 1, GamesWon: 1}}, nil
}

func TestPrintHistory(t *testing.T) {
	svc := game.NewService(historyRepo{}, nil, zap.NewNop().Sugar())

	var buf bytes.Buffer
	if err := printHistory(context.Background(), &buf, svc, 10); err != nil {
		t.Fatalf("printHistory: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Recent games", "bob won", "1m15s", "Leaderboard", "1216"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestPrintHistoryWithoutDatabase(t *testing.T) {
	svc := game.NewService(nil, nil, zap.NewNop().Sugar())
	err := printHistory(context.Background(), &bytes.Buffer{}, svc, 10)
	if !errors.Is(err, game.ErrHistoryDisabled) {
		t.Errorf("Expected ErrHistoryDisabled, got %v", err)
	}
}

func TestRunReportsErrors(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "connect4.log")
	t.Setenv("LOG_FILE", logFile)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_URI", "")
	t.Setenv("REDIS_URL", "")

	if err := run(options{History: true, Limit: 5}, true); !errors.Is(err, game.ErrHistoryDisabled) {
		t.Errorf("Expected ErrHistoryDisabled, got %v", err)
	}

	err := run(options{Resume: uid.GenerateGameID()}, true)
	if !errors.Is(err, game.ErrResumeDisabled) {
		t.Errorf("Expected ErrResumeDisabled, got %v", err)
	}

	raw, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "could not start game") {
		t.Errorf("Expected the failure in the log, got:\n%s", raw)
	}
}
