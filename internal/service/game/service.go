package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/engine/internal/domain"
	"github.com/iamasit07/4-in-a-row/engine/pkg/uid"
)

// GameRepository stores finished games.
type GameRepository interface {
	SaveGame(ctx context.Context, rec domain.GameRecord) error
	GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error)
	RecentGames(ctx context.Context, limit int) ([]domain.GameRecord, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.PlayerStats, error)
}

// SnapshotCache keeps unfinished games around so they can be resumed.
type SnapshotCache interface {
	Save(ctx context.Context, gameID string, snap domain.Snapshot) error
	Load(ctx context.Context, gameID string) (domain.Snapshot, error)
	Delete(ctx context.Context, gameID string) error
}

// Service is the entry point for game logic. Both backends are optional;
// a nil repo or cache just turns that feature off.
type Service struct {
	repo  GameRepository
	cache SnapshotCache
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewService(repo GameRepository, cache SnapshotCache, log *zap.SugaredLogger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

func (s *Service) HasHistory() bool { return s.repo != nil }
func (s *Service) CanResume() bool { return s.cache != nil }

// Start creates a new game between p1 and p2; p1 moves first.
func (s *Service) Start(ctx context.Context, p1, p2 domain.Player, columns, rows int) (*Session, error) {
	g, err := domain.NewGame(p1, p2, columns, rows)
	if err != nil {
		return nil, err
	}

	session := s.newSession(uid.GenerateGameID(), g)
	s.log.Infow("game started", "game_id", session.GameID, "player1", p1.Name, "player2", p2.Name,
		"columns", columns, "rows", rows)
	session.cacheSnapshot(ctx)
	return session, nil
}

// Resume restores an unfinished game from the cache. A game that is no longer
// cached but shows up in the history has already finished.
func (s *Service) Resume(ctx context.Context, gameID string) (*Session, error) {
	if s.cache == nil {
		return nil, ErrResumeDisabled
	}
	if !uid.IsGameID(gameID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGameID, gameID)
	}

	snap, err := s.cache.Load(ctx, gameID)
	if err != nil {
		if rec := s.finishedGame(ctx, gameID); rec != nil {
			return nil, fmt.Errorf("game %s finished at %s: %w", gameID,
				rec.FinishedAt.Local().Format("2006-01-02 15:04"), domain.ErrGameAlreadyOver)
		}
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}

	g, err := domain.RestoreGame(snap)
	if err != nil {
		s.log.Warnw("dropping corrupt snapshot", "game_id", gameID, zap.Error(err))
		if delErr := s.cache.Delete(ctx, gameID); delErr != nil {
			s.log.Errorw("could not delete snapshot", "game_id", gameID, zap.Error(delErr))
		}
		return nil, fmt.Errorf("restore game %s: %w", gameID, err)
	}
	if g.IsTerminal() {
		return nil, fmt.Errorf("restore game %s: %w", gameID, domain.ErrGameAlreadyOver)
	}

	session := s.newSession(gameID, g)
	s.log.Infow("game resumed", "game_id", gameID, "moves", g.MoveCount())
	return session, nil
}

// Rematch starts a new game with the same players and board size as prev.
func (s *Service) Rematch(ctx context.Context, prev *Session) (*Session, error) {
	prev.mu.Lock()
	g, err := prev.game.Rematch()
	prev.mu.Unlock()
	if err != nil {
		return nil, err
	}

	session := s.newSession(uid.GenerateGameID(), g)
	s.log.Infow("rematch started", "game_id", session.GameID, "previous_game_id", prev.GameID)
	session.cacheSnapshot(ctx)
	return session, nil
}

// History returns the latest finished games.
func (s *Service) History(ctx context.Context, limit int) ([]domain.GameRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.RecentGames(ctx, limit)
}

// Leaderboard returns the best rated players.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.PlayerStats, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.Leaderboard(ctx, limit)
}

func (s *Service) finishedGame(ctx context.Context, gameID string) *domain.GameRecord {
	if s.repo == nil {
		return nil
	}
	rec, err := s.repo.GetGameByID(ctx, gameID)
	if err != nil {
		s.log.Warnw("could not look up game history", "game_id", gameID, zap.Error(err))
		return nil
	}
	return rec
}

func (s *Service) newSession(gameID string, g *domain.Game) *Session {
	return &Session{
		GameID:    gameID,
		CreatedAt: s.now(),
		game:      g,
		svc:       s,
	}
}
