// Package monopoly implements the turn-based board game engine.
// Each game is bound to a single chat room: players roll two dice, move
// around a circular board and trigger the effect of the field they land
// on. The engine knows nothing about Telegram; every state change is
// reported through the EventHandler interface so that any presentation
// layer can render it.
package monopoly

import (
	"github.com/rs/zerolog/log"
)

// EventType identifies a single kind of engine event.
type EventType string

// Session lifecycle events, emitted by the SessionManager.
const (
	EventSessionStart EventType = "session_start"
	EventSessionEnd   EventType = "session_end"
	EventSessionJoin  EventType = "session_join"
	EventSessionLeave EventType = "session_leave"
)

// Game lifecycle events, emitted by the Game itself.
const (
	EventGameStart EventType = "game_start"
	EventGameEnd   EventType = "game_end"
	EventGameJoin  EventType = "game_join"
	EventGameLeave EventType = "game_leave"
	EventGameNext  EventType = "game_next"
	// EventGameTurn is reserved for multi-step turns. Nothing emits it yet.
	EventGameTurn  EventType = "game_turn"
	EventGameState EventType = "game_state"
)

// Player events, emitted while resolving a turn.
const (
	EventPlayerDice   EventType = "player_dice"
	EventPlayerMove   EventType = "player_move"
	EventPlayerBuy    EventType = "player_buy"
	EventPlayerChance EventType = "player_chance"
	EventPlayerPrison EventType = "player_prison"
	EventPlayerCasino EventType = "player_casino"
)

// Event is an immutable record of one engine state change. It is built and
// handed to the sink synchronously; the engine never retains it.
type Event struct {
	RoomID int64
	Player *Player // may be nil for room-level events
	Type   EventType
	Data   string
	Game   *Game
}

// EventHandler receives every event the engine emits, in emission order.
// Push is called synchronously from within the triggering operation and
// must not block for long; delivery is fire-and-forget. A panic inside
// Push is contained by the engine and cannot corrupt game state.
type EventHandler interface {
	Push(event Event)
}

// LogHandler is the fallback sink. It writes every event to the logger
// and is used when no presentation layer has been attached yet.
type LogHandler struct{}

// Push logs the event.
func (LogHandler) Push(event Event) {
	e := log.Info().
		Int64("room_id", event.RoomID).
		Str("type", string(event.Type))
	if event.Player != nil {
		e = e.Str("player", event.Player.Name)
	}
	if event.Data != "" {
		e = e.Str("data", event.Data)
	}
	e.Msg("game event")
}
