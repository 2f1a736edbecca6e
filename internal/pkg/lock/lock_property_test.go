package lock

import (
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// TestRoomSerializationProperty checks that for any set of concurrent
// commands against one room, the observed interleaving is equivalent to
// sequential execution: a plain counter incremented under the room lock
// never loses an update.
func TestRoomSerializationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roomID := rapid.Int64Range(1, 1000000).Draw(t, "roomID")
		numOps := rapid.IntRange(2, 50).Draw(t, "numOps")

		rl := NewRoomLock()
		counter := 0

		var wg sync.WaitGroup
		for i := 0; i < numOps; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = rl.WithLock(roomID, func() error {
					counter++
					return nil
				})
			}()
		}
		wg.Wait()

		if counter != numOps {
			t.Fatalf("lost updates: counter=%d, want %d", counter, numOps)
		}
	})
}

// TestRoomsIndependent checks that holding one room's lock never blocks
// another room.
func TestRoomsIndependent(t *testing.T) {
	rl := NewRoomLock()

	rl.Lock(1)
	defer rl.Unlock(1)

	if !rl.TryLock(2) {
		t.Fatal("room 2 must not be blocked by room 1")
	}
	rl.Unlock(2)
}

func TestTryLockExcludes(t *testing.T) {
	rl := NewRoomLock()

	if !rl.TryLock(7) {
		t.Fatal("first TryLock must succeed")
	}
	if rl.TryLock(7) {
		t.Fatal("second TryLock must fail while held")
	}
	rl.Unlock(7)
	if !rl.TryLock(7) {
		t.Fatal("TryLock must succeed after release")
	}
	rl.Unlock(7)
}

func TestForget(t *testing.T) {
	rl := NewRoomLock()
	rl.Lock(3)
	rl.Unlock(3)
	rl.Forget(3)
	rl.Forget(99) // unknown rooms are fine

	if !rl.TryLock(3) {
		t.Fatal("a forgotten room starts with a fresh lock")
	}
	rl.Unlock(3)
}
