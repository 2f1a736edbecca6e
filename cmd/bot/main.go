// Package main is the entry point for the Telegram Monopoly bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-monopoly-bot/internal/bot"
	"telegram-monopoly-bot/internal/config"
	"telegram-monopoly-bot/internal/monopoly"
	"telegram-monopoly-bot/internal/pkg/db"
	"telegram-monopoly-bot/internal/pkg/lock"
	"telegram-monopoly-bot/internal/repository"
	"telegram-monopoly-bot/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories and the stats service
	statsRepo := repository.NewStatsRepository(dbPool.Pool)
	matchRepo := repository.NewMatchRepository(dbPool.Pool)
	statsService := service.NewStatsService(statsRepo, matchRepo)

	// Initialize the game engine: live games stay in memory, only results
	// are persisted.
	sessions := monopoly.NewSessionManager(monopoly.NewMemoryStorage(), nil)
	sessions.SetGameConfig(&monopoly.GameConfig{
		MinPlayers:   cfg.Game.MinPlayers,
		StartBalance: cfg.Game.StartBalance,
	})

	roomLock := lock.NewRoomLock()

	deps := &bot.Dependencies{
		Config:   cfg,
		Sessions: sessions,
		Stats:    statsService,
		RoomLock: roomLock,
	}

	telegramBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create player_stats table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS player_stats (
			user_id BIGINT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			first_places INT NOT NULL DEFAULT 0,
			total_games INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_player_stats_first_places ON player_stats(first_places DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: player_stats table created")

	// Migration 2: Create matches table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			room_id BIGINT NOT NULL,
			winner_id BIGINT,
			players INT NOT NULL,
			rounds INT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_matches_room ON matches(room_id, finished_at DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: matches table created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
