package handler

import (
	"context"
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"telegram-monopoly-bot/internal/repository"
	"telegram-monopoly-bot/internal/service"
)

// StatsHandler handles lifetime statistics commands.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleStats handles the /stats command: the sender's lifetime record.
func (h *StatsHandler) HandleStats(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	stats, err := h.stats.PlayerStats(ctx, sender.ID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		return c.Reply("📊 No finished games yet. Start one with /game!")
	}
	if err != nil {
		return c.Reply("❌ Could not load your stats, please try again.")
	}

	return c.Reply(fmt.Sprintf(
		"📊 <b>%s</b>\n"+
			"🏆 First places: %d\n"+
			"🎲 Games played: %d",
		stats.Username, stats.FirstPlaces, stats.TotalGames,
	), tele.ModeHTML)
}

// HandleTop handles the /top command: players ranked by first places.
func (h *StatsHandler) HandleTop(c tele.Context) error {
	ctx := context.Background()

	top, err := h.stats.Leaderboard(ctx, 10)
	if err != nil {
		return c.Reply("❌ Could not load the leaderboard, please try again.")
	}
	if len(top) == 0 {
		return c.Reply("📊 Nobody has finished a game yet.")
	}

	msg := "🏆 <b>Hall of fame</b>\n"
	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range top {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		msg += fmt.Sprintf("%s %s — %d wins / %d games\n", rank, s.Username, s.FirstPlaces, s.TotalGames)
	}

	return c.Reply(msg, tele.ModeHTML)
}
