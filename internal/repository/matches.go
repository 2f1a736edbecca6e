package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"telegram-monopoly-bot/internal/model"
)

// MatchRepository persists finished game records.
type MatchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository creates a new MatchRepository instance.
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// Create stores a finished game.
func (r *MatchRepository) Create(ctx context.Context, roomID int64, winnerID *int64, players, rounds int, startedAt time.Time) (*model.Match, error) {
	const query = `
		INSERT INTO matches (room_id, winner_id, players, rounds, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, room_id, winner_id, players, rounds, started_at, finished_at
	`

	var match model.Match
	err := r.pool.QueryRow(ctx, query, roomID, winnerID, players, rounds, startedAt).Scan(
		&match.ID,
		&match.RoomID,
		&match.WinnerID,
		&match.Players,
		&match.Rounds,
		&match.StartedAt,
		&match.FinishedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match record: %w", err)
	}

	return &match, nil
}

// ListByRoom returns the most recent finished games of a room.
func (r *MatchRepository) ListByRoom(ctx context.Context, roomID int64, limit int) ([]*model.Match, error) {
	const query = `
		SELECT id, room_id, winner_id, players, rounds, started_at, finished_at
		FROM matches
		WHERE room_id = $1
		ORDER BY finished_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var out []*model.Match
	for rows.Next() {
		var match model.Match
		if err := rows.Scan(
			&match.ID,
			&match.RoomID,
			&match.WinnerID,
			&match.Players,
			&match.Rounds,
			&match.StartedAt,
			&match.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		out = append(out, &match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matches: %w", err)
	}

	return out, nil
}
