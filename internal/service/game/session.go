package game

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
)

// Session wraps one game with its id and bookkeeping. Calls are serialised
// so a burst of input can never interleave two drops.
type Session struct {
	GameID     string
	CreatedAt  time.Time
	FinishedAt time.Time

	mu   sync.Mutex
	game *domain.Game
	svc  *Service
}

// Drop plays column for the active player. The cache and history are
// updated after the move; failures there are logged and never undo it.
func (s *Session) Drop(ctx context.Context, column int) (domain.PlacementResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.svc.log.With("game_id", s.GameID)

	res, err := s.game.DropPiece(column)
	if err != nil {
		log.Debugw("drop rejected", "column", column, "player", s.game.ActivePlayer().ID, zap.Error(err))
		return res, err
	}
	log.Debugw("piece dropped", "column", column, "row", res.Row, "player", res.Player)

	if !res.Outcome.IsTerminal() {
		s.cacheSnapshotLocked(ctx)
		return res, nil
	}

	s.FinishedAt = s.svc.now()
	log.Infow("game over", "status", res.Outcome.Status, "winner", res.Outcome.Winner,
		"moves", s.game.MoveCount())
	s.recordLocked(ctx, res.Outcome)

	if s.svc.cache != nil {
		if err := s.svc.cache.Delete(ctx, s.GameID); err != nil {
			log.Errorw("could not delete snapshot", zap.Error(err))
		}
	}
	return res, nil
}

// View gives read access to the game while holding the session lock.
func (s *Session) View(fn func(g *domain.Game)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

func (s *Session) IsTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.IsTerminal()
}

func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) recordFor(outcome domain.Outcome) domain.GameRecord {
	players := s.game.Players()
	finished := s.FinishedAt
	if finished.IsZero() {
		finished = s.svc.now()
	}
	return domain.GameRecord{
		GameID:          s.GameID,
		Player1:         players[0],
		Player2:         players[1],
		Outcome:         outcome,
		TotalMoves:      s.game.MoveCount(),
		DurationSeconds: int(finished.Sub(s.CreatedAt).Seconds()),
		Board:           s.game.Grid(),
		CreatedAt:       s.CreatedAt,
		FinishedAt:      finished,
	}
}

func (s *Session) recordLocked(ctx context.Context, outcome domain.Outcome) {
	if s.svc.repo == nil {
		return
	}
	if err := s.svc.repo.SaveGame(ctx, s.recordFor(outcome)); err != nil {
		s.svc.log.Errorw("error saving game", "game_id", s.GameID, zap.Error(err))
		return
	}
	s.svc.log.Infow("game saved", "game_id", s.GameID)
}

func (s *Session) cacheSnapshot(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheSnapshotLocked(ctx)
}

func (s *Session) cacheSnapshotLocked(ctx context.Context) {
	if s.svc.cache == nil {
		return
	}
	if err := s.svc.cache.Save(ctx, s.GameID, s.game.Snapshot()); err != nil {
		s.svc.log.Errorw("could not cache snapshot", "game_id", s.GameID, zap.Error(err))
	}
}
