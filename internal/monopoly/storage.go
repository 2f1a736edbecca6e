package monopoly

import "sync"

// Storage is the pluggable backing for the room-to-game and user-to-room
// indices. Implementations must be safe for concurrent use: joins and
// leaves mutate the user index from any room's goroutine.
type Storage interface {
	// AddGame binds a game to its room.
	AddGame(roomID int64, game *Game)
	// GetGame returns the room's game, or ErrNoGameInRoom.
	GetGame(roomID int64) (*Game, error)
	// RemoveGame unbinds and returns the room's game, or ErrNoGameInRoom.
	RemoveGame(roomID int64) (*Game, error)

	// AddPlayer records that a user plays in a room.
	AddPlayer(roomID, userID int64)
	// RemovePlayer forgets the user's room.
	RemovePlayer(userID int64)
	// RemoveRoomPlayers forgets every user bound to the room. Needed when
	// a session is torn down after the game already cleared its player
	// list.
	RemoveRoomPlayers(roomID int64)
	// GetRoom returns the room a user plays in, or ErrNoGameInRoom.
	GetRoom(userID int64) (int64, error)
	// GetPlayerGame returns the game a user plays in, or ErrNoGameInRoom.
	GetPlayerGame(userID int64) (*Game, error)
}

// MemoryStorage keeps all sessions in process memory. It is the
// authoritative store of a single process: a restart loses every active
// game, which is an accepted property of the engine.
type MemoryStorage struct {
	mu         sync.RWMutex
	games      map[int64]*Game
	userToRoom map[int64]int64
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		games:      make(map[int64]*Game),
		userToRoom: make(map[int64]int64),
	}
}

// AddGame binds a game to its room.
func (s *MemoryStorage) AddGame(roomID int64, game *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[roomID] = game
}

// GetGame returns the room's game.
func (s *MemoryStorage) GetGame(roomID int64) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[roomID]
	if !ok {
		return nil, ErrNoGameInRoom
	}
	return game, nil
}

// RemoveGame unbinds and returns the room's game.
func (s *MemoryStorage) RemoveGame(roomID int64) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[roomID]
	if !ok {
		return nil, ErrNoGameInRoom
	}
	delete(s.games, roomID)
	return game, nil
}

// AddPlayer records that a user plays in a room.
func (s *MemoryStorage) AddPlayer(roomID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userToRoom[userID] = roomID
}

// RemovePlayer forgets the user's room.
func (s *MemoryStorage) RemovePlayer(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.userToRoom, userID)
}

// RemoveRoomPlayers forgets every user bound to the room.
func (s *MemoryStorage) RemoveRoomPlayers(roomID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, room := range s.userToRoom {
		if room == roomID {
			delete(s.userToRoom, userID)
		}
	}
}

// GetRoom returns the room a user plays in.
func (s *MemoryStorage) GetRoom(userID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roomID, ok := s.userToRoom[userID]
	if !ok {
		return 0, ErrNoGameInRoom
	}
	return roomID, nil
}

// GetPlayerGame returns the game a user plays in.
func (s *MemoryStorage) GetPlayerGame(userID int64) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roomID, ok := s.userToRoom[userID]
	if !ok {
		return nil, ErrNoGameInRoom
	}
	game, ok := s.games[roomID]
	if !ok {
		return nil, ErrNoGameInRoom
	}
	return game, nil
}
