// Package model defines the persistent data models of the bot.
// Live game state is never persisted; these records only track lifetime
// statistics across finished games.
package model

import "time"

// PlayerStats is a user's lifetime game record.
type PlayerStats struct {
	UserID      int64     `db:"user_id"`
	Username    string    `db:"username"`
	FirstPlaces int       `db:"first_places"`
	TotalGames  int       `db:"total_games"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Match records one finished game.
type Match struct {
	ID         int64     `db:"id"`
	RoomID     int64     `db:"room_id"`
	WinnerID   *int64    `db:"winner_id"` // nil when the game ended without a winner
	Players    int       `db:"players"`
	Rounds     int       `db:"rounds"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
}
