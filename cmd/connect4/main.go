package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/logging"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/postgres"
	redisrepo "github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/game"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/tui"
)

type options struct {
	Columns      int    `short:"c" long:"columns" description:"Board width (default 7, or BOARD_COLUMNS)"`
	Rows         int    `short:"r" long:"rows" description:"Board height (default 6, or BOARD_ROWS)"`
	Player1Name  string `long:"p1-name" description:"Name of the player who moves first"`
	Player1Color string `long:"p1-color" description:"Colour of player 1 (#rrggbb, ANSI 0-255 or a name)"`
	Player2Name  string `long:"p2-name" description:"Name of player 2"`
	Player2Color string `long:"p2-color" description:"Colour of player 2"`
	Resume       string `long:"resume" value-name:"GAME_ID" description:"Resume an unfinished game (needs REDIS_URL)"`
	History      bool   `long:"history" description:"Print recent games and the leaderboard, then exit (needs DATABASE_URL)"`
	Limit        int    `long:"limit" default:"10" description:"Rows to show with --history"`
}

func main() {
	envLoaded := config.LoadEnv()

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts, envLoaded); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(opts options, envLoaded bool) error {
	log, err := logging.NewLogger(config.GetEnv("LOG_FILE", "connect4.log"), config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return fmt.Errorf("could not set up logging: %w", err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log.Desugar())

	if !envLoaded {
		log.Debugw("no .env file found")
	}

	cfg := config.LoadConfig()
	applyOptions(cfg, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo game.GameRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Warnw("database unreachable, history disabled", zap.Error(err))
		} else {
			defer db.Close()
			if err := postgres.RunMigrations(ctx, db); err != nil {
				log.Errorw("migration failed, history disabled", zap.Error(err))
			} else {
				repo = postgres.NewGameRepo(db)
			}
		}
	}

	var cache game.SnapshotCache
	if cfg.RedisURL != "" {
		if client := redisrepo.Connect(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, log); client != nil {
			defer client.Close()
			cache = redisrepo.NewSnapshotCache(client, cfg.SnapshotTTL)
		}
	}

	svc := game.NewService(repo, cache, log)

	if opts.History {
		return printHistory(ctx, os.Stdout, svc, opts.Limit)
	}

	var session *game.Session
	if opts.Resume != "" {
		session, err = svc.Resume(ctx, opts.Resume)
	} else {
		session, err = svc.Start(ctx, cfg.Player1, cfg.Player2, cfg.Columns, cfg.Rows)
	}
	if err != nil {
		log.Errorw("could not start game", zap.Error(err))
		return fmt.Errorf("could not start game: %w", err)
	}

	p := tea.NewProgram(
		tui.New(ctx, svc, session, log),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Errorw("terminal ui failed", zap.Error(err))
		return err
	}

	if m, ok := final.(tui.Model); ok && !m.Session().IsTerminal() && svc.CanResume() {
		fmt.Printf("Game saved. Resume it with: connect4 --resume %s\n", m.Session().GameID)
	}
	return nil
}

// applyOptions lets command-line flags override the environment.
func applyOptions(cfg *config.Config, opts options) {
	if opts.Columns != 0 {
		cfg.Columns = opts.Columns
	}
	if opts.Rows != 0 {
		cfg.Rows = opts.Rows
	}
	if opts.Player1Name != "" {
		cfg.Player1.Name = opts.Player1Name
	}
	if opts.Player2Name != "" {
		cfg.Player2.Name = opts.Player2Name
	}
	if opts.Player1Color != "" {
		cfg.Player1.Color = config.NormalizeColor(opts.Player1Color, cfg.Player1.Color)
	}
	if opts.Player2Color != "" {
		cfg.Player2.Color = config.NormalizeColor(opts.Player2Color, cfg.Player2.Color)
	}
}
