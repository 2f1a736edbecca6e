// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"telegram-monopoly-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrStatsNotFound = errors.New("player stats not found")
)

// StatsRepository persists lifetime player statistics.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository instance.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// GetByID retrieves a user's stats. Returns ErrStatsNotFound if the user
// has never finished a game.
func (r *StatsRepository) GetByID(ctx context.Context, userID int64) (*model.PlayerStats, error) {
	const query = `
		SELECT user_id, username, first_places, total_games, created_at, updated_at
		FROM player_stats
		WHERE user_id = $1
	`

	var stats model.PlayerStats
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.Username,
		&stats.FirstPlaces,
		&stats.TotalGames,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	return &stats, nil
}

// RecordResult counts one finished game for the user, incrementing the
// first-place counter when won is set. The row is created on first use.
func (r *StatsRepository) RecordResult(ctx context.Context, userID int64, username string, won bool) error {
	const query = `
		INSERT INTO player_stats (user_id, username, first_places, total_games, created_at, updated_at)
		VALUES ($1, $2, $3, 1, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_places = player_stats.first_places + $3,
			total_games = player_stats.total_games + 1,
			updated_at = NOW()
	`

	wonInc := 0
	if won {
		wonInc = 1
	}
	if _, err := r.pool.Exec(ctx, query, userID, username, wonInc); err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}
	return nil
}

// Top returns the users with the most first places.
func (r *StatsRepository) Top(ctx context.Context, limit int) ([]*model.PlayerStats, error) {
	const query = `
		SELECT user_id, username, first_places, total_games, created_at, updated_at
		FROM player_stats
		ORDER BY first_places DESC, total_games ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top players: %w", err)
	}
	defer rows.Close()

	var out []*model.PlayerStats
	for rows.Next() {
		var stats model.PlayerStats
		if err := rows.Scan(
			&stats.UserID,
			&stats.Username,
			&stats.FirstPlaces,
			&stats.TotalGames,
			&stats.CreatedAt,
			&stats.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan player stats: %w", err)
		}
		out = append(out, &stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read top players: %w", err)
	}

	return out, nil
}
