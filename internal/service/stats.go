// Package service provides business logic on top of the repositories.
package service

import (
	"context"
	"fmt"

	"telegram-monopoly-bot/internal/model"
	"telegram-monopoly-bot/internal/monopoly"
	"telegram-monopoly-bot/internal/repository"
)

// StatsService persists game outcomes and serves leaderboard queries.
type StatsService struct {
	statsRepo *repository.StatsRepository
	matchRepo *repository.MatchRepository
}

// NewStatsService creates a new StatsService instance.
func NewStatsService(
	statsRepo *repository.StatsRepository,
	matchRepo *repository.MatchRepository,
) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		matchRepo: matchRepo,
	}
}

// RecordGame persists the outcome of a finished game: one match row plus
// a per-player stats update. By the time a game ends its player list is
// already cleared, so participants are reconstructed from the winner and
// the bankrupt list.
func (s *StatsService) RecordGame(ctx context.Context, g *monopoly.Game) error {
	var winnerID *int64
	players := len(g.Bankrupts)
	if g.Winner != nil {
		id := g.Winner.UserID
		winnerID = &id
		players++
	}

	if _, err := s.matchRepo.Create(ctx, g.RoomID, winnerID, players, g.RoundCounter, g.GameStart); err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}

	if g.Winner != nil {
		if err := s.statsRepo.RecordResult(ctx, g.Winner.UserID, g.Winner.Name, true); err != nil {
			return fmt.Errorf("failed to record winner stats: %w", err)
		}
	}
	for _, p := range g.Bankrupts {
		if err := s.statsRepo.RecordResult(ctx, p.UserID, p.Name, false); err != nil {
			return fmt.Errorf("failed to record player stats: %w", err)
		}
	}
	return nil
}

// PlayerStats retrieves a single player's lifetime record.
func (s *StatsService) PlayerStats(ctx context.Context, userID int64) (*model.PlayerStats, error) {
	return s.statsRepo.GetByID(ctx, userID)
}

// Leaderboard retrieves the top players by first places.
func (s *StatsService) Leaderboard(ctx context.Context, limit int) ([]*model.PlayerStats, error) {
	return s.statsRepo.Top(ctx, limit)
}

// RoomHistory lists the most recent matches played in a room.
func (s *StatsService) RoomHistory(ctx context.Context, roomID int64, limit int) ([]*model.Match, error) {
	return s.matchRepo.ListByRoom(ctx, roomID, limit)
}
