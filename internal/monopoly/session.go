package monopoly

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// SessionManager owns every running game and binds each to a single room.
// A user plays in at most one room at a time. The manager serializes its
// compound index operations; turn operations against one Game must still
// be serialized per room by the caller.
type SessionManager struct {
	mu      sync.Mutex
	storage Storage
	events  EventHandler
	gameCfg *GameConfig
}

// NewSessionManager creates a session manager. storage and events may be
// nil, selecting the in-memory storage and the logging sink.
func NewSessionManager(storage Storage, events EventHandler) *SessionManager {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if events == nil {
		events = LogHandler{}
	}
	return &SessionManager{storage: storage, events: events}
}

// SetHandler replaces the event sink. New games pick it up on creation;
// call this before creating sessions.
func (sm *SessionManager) SetHandler(events EventHandler) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.events = events
}

// SetGameConfig sets the tuning applied to every new game.
func (sm *SessionManager) SetGameConfig(cfg *GameConfig) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.gameCfg = cfg
}

// Create starts a new session in roomID with user as the room owner. The
// owner joins the game immediately.
func (sm *SessionManager) Create(roomID int64, user BaseUser) (*Game, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, err := sm.storage.GetGame(roomID); err == nil {
		return nil, ErrGameExists
	}
	if _, err := sm.storage.GetRoom(user.ID); err == nil {
		return nil, ErrAlreadyJoined
	}

	log.Info().Int64("room_id", roomID).Int64("user_id", user.ID).Msg("creating game session")

	game := NewGame(sm.events, roomID, user, sm.gameCfg)
	sm.storage.AddGame(roomID, game)
	sm.storage.AddPlayer(roomID, user.ID)
	sm.push(game, game.Owner, EventSessionStart)
	return game, nil
}

// Join adds user to the room's game. It fails when the room has no game,
// the lobby is closed, or the user already plays somewhere.
func (sm *SessionManager) Join(roomID int64, user BaseUser) (*Player, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	game, err := sm.storage.GetGame(roomID)
	if err != nil {
		return nil, err
	}
	if _, err := sm.storage.GetRoom(user.ID); err == nil {
		return nil, ErrAlreadyJoined
	}

	player, err := game.AddPlayer(user)
	if err != nil {
		return nil, err
	}
	sm.storage.AddPlayer(roomID, user.ID)
	sm.push(game, player, EventSessionJoin)
	return player, nil
}

// Leave removes the player from their game and from the user index.
func (sm *SessionManager) Leave(player *Player) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	game, err := sm.storage.GetPlayerGame(player.UserID)
	if err != nil {
		return err
	}
	if err := game.RemovePlayer(player.UserID); err != nil {
		return err
	}
	sm.storage.RemovePlayer(player.UserID)
	sm.push(game, player, EventSessionLeave)
	return nil
}

// GetPlayer finds the player a user currently plays as, across all rooms.
func (sm *SessionManager) GetPlayer(userID int64) (*Player, bool) {
	game, err := sm.storage.GetPlayerGame(userID)
	if err != nil {
		return nil, false
	}
	player := game.GetPlayer(userID)
	if player == nil {
		return nil, false
	}
	return player, true
}

// GetGame returns the room's game.
func (sm *SessionManager) GetGame(roomID int64) (*Game, error) {
	return sm.storage.GetGame(roomID)
}

// Remove tears down the room's session entirely, forgetting every player
// in it. To finish only the current round, use Game.End instead.
func (sm *SessionManager) Remove(roomID int64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	game, err := sm.storage.RemoveGame(roomID)
	if err != nil {
		return err
	}
	sm.storage.RemoveRoomPlayers(roomID)
	sm.push(game, game.Owner, EventSessionEnd)
	return nil
}

// push emits a session-level event, containing sink panics the same way
// games do.
func (sm *SessionManager) push(game *Game, player *Player, t EventType) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Int64("room_id", game.RoomID).
				Str("type", string(t)).
				Interface("panic", r).
				Msg("event sink panicked")
		}
	}()
	sm.events.Push(Event{
		RoomID: game.RoomID,
		Player: player,
		Type:   t,
		Game:   game,
	})
}
