// Package lock provides per-room locking for game commands.
//
// Every game is a unit of sequential state: two commands from different
// chat members of the same room must never race on the turn cursor or on
// balances. Handlers take the room's lock for the duration of a mutating
// command, so concurrent commands queue per room while different rooms
// run fully in parallel.
package lock

import "sync"

// RoomLock hands out one mutex per room ID.
type RoomLock struct {
	locks sync.Map // map[int64]*sync.Mutex
}

// NewRoomLock creates a new RoomLock instance.
func NewRoomLock() *RoomLock {
	return &RoomLock{}
}

func (rl *RoomLock) get(roomID int64) *sync.Mutex {
	if v, ok := rl.locks.Load(roomID); ok {
		return v.(*sync.Mutex)
	}
	v, _ := rl.locks.LoadOrStore(roomID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Lock acquires the room's lock, waiting for any command already running
// in that room.
func (rl *RoomLock) Lock(roomID int64) {
	rl.get(roomID).Lock()
}

// Unlock releases the room's lock.
func (rl *RoomLock) Unlock(roomID int64) {
	if v, ok := rl.locks.Load(roomID); ok {
		v.(*sync.Mutex).Unlock()
	}
}

// TryLock attempts to acquire the room's lock without blocking.
func (rl *RoomLock) TryLock(roomID int64) bool {
	return rl.get(roomID).TryLock()
}

// WithLock runs fn while holding the room's lock.
func (rl *RoomLock) WithLock(roomID int64, fn func() error) error {
	rl.Lock(roomID)
	defer rl.Unlock(roomID)
	return fn()
}

// Forget drops the room's mutex once its game is gone. Safe to call for
// unknown rooms.
func (rl *RoomLock) Forget(roomID int64) {
	rl.locks.Delete(roomID)
}
