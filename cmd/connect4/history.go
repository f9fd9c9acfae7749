package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

func printHistory(ctx context.Context, w io.Writer, svc *game.Service, limit int) error {
	if !svc.HasHistory() {
		return game.ErrHistoryDisabled
	}

	games, err := svc.History(ctx, limit)
	if err != nil {
		return fmt.Errorf("could not load history: %w", err)
	}
	stats, err := svc.Leaderboard(ctx, limit)
	if err != nil {
		return fmt.Errorf("could not load leaderboard: %w", err)
	}

	fmt.Fprintln(w, headerStyle.Render("Recent games"))
	fmt.Fprintln(w, gamesTable(games))
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Leaderboard"))
	fmt.Fprintln(w, leaderboardTable(stats))
	return nil
}

func gamesTable(games []domain.GameRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FINISHED", "PLAYER 1", "PLAYER 2", "RESULT", "MOVES", "TIME")

	for _, g := range games {
		result := "draw"
		if name := g.WinnerName(); name != "" {
			result = name + " won"
		}
		t.Row(
			g.FinishedAt.Local().Format("2006-01-02 15:04"),
			g.Player1.Name,
			g.Player2.Name,
			result,
			strconv.Itoa(g.TotalMoves),
			fmt.Sprintf("%dm%02ds", g.DurationSeconds/60, g.DurationSeconds%60),
		)
	}
	return t.String()
}

func leaderboardTable(stats []domain.PlayerStats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "PLAYER", "RATING", "PLAYED", "WON", "DRAWN")

	for i, s := range stats {
		t.Row(
			strconv.Itoa(i+1),
			s.Name,
			strconv.Itoa(s.Rating),
			strconv.Itoa(s.GamesPlayed),
			strconv.Itoa(s.GamesWon),
			strconv.Itoa(s.GamesDrawn),
		)
	}
	return t.String()
}
