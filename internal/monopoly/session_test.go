package monopoly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestManager() (*SessionManager, *recordingHandler) {
	sink := &recordingHandler{}
	sm := NewSessionManager(NewMemoryStorage(), sink)
	sm.SetGameConfig(testGameConfig(1))
	return sm, sink
}

func TestCreateSession(t *testing.T) {
	sm, sink := newTestManager()

	game, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
	require.Equal(t, int64(100), game.RoomID)
	require.Equal(t, int64(1), game.Owner.UserID)
	require.Len(t, game.Players, 1, "the owner joins immediately")
	require.Equal(t, []EventType{EventSessionStart}, sink.types())

	_, err = sm.Create(100, BaseUser{ID: 2, Name: "bob"})
	require.ErrorIs(t, err, ErrGameExists)
}

func TestCreateWhilePlayingElsewhere(t *testing.T) {
	sm, _ := newTestManager()

	_, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
	_, err = sm.Create(200, BaseUser{ID: 1, Name: "alice"})
	require.ErrorIs(t, err, ErrAlreadyJoined, "one active game per user")
}

func TestJoinSession(t *testing.T) {
	sm, sink := newTestManager()

	_, err := sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.ErrorIs(t, err, ErrNoGameInRoom)

	game, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)

	player, err := sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)
	require.Len(t, game.Players, 2)

	_, err = sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.ErrorIs(t, err, ErrAlreadyJoined)

	// A user playing in one room cannot join another.
	_, err = sm.Create(200, BaseUser{ID: 3, Name: "carol"})
	require.NoError(t, err)
	_, err = sm.Join(200, BaseUser{ID: 2, Name: "bob"})
	require.ErrorIs(t, err, ErrAlreadyJoined)

	found, ok := sm.GetPlayer(2)
	require.True(t, ok)
	require.Same(t, player, found)
	require.Equal(t, 1, sink.count(EventSessionJoin))
}

func TestJoinStartedGame(t *testing.T) {
	sm, _ := newTestManager()
	game, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
	_, err = sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)
	require.NoError(t, game.Start())

	_, err = sm.Join(100, BaseUser{ID: 3, Name: "carol"})
	require.ErrorIs(t, err, ErrLobbyClosed)
}

func TestLeaveSession(t *testing.T) {
	sm, sink := newTestManager()
	_, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
	player, err := sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)

	require.NoError(t, sm.Leave(player))

	_, ok := sm.GetPlayer(2)
	require.False(t, ok, "the user index forgets a leaver")
	require.Equal(t, 1, sink.count(EventSessionLeave))

	// Leaving again fails: the player is no longer bound to any room.
	require.ErrorIs(t, sm.Leave(player), ErrNoGameInRoom)
}

func TestGetPlayerUnknown(t *testing.T) {
	sm, _ := newTestManager()
	_, ok := sm.GetPlayer(42)
	require.False(t, ok)
}

func TestRemoveSession(t *testing.T) {
	sm, sink := newTestManager()
	_, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
	_, err = sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)

	require.NoError(t, sm.Remove(100))

	_, err = sm.GetGame(100)
	require.ErrorIs(t, err, ErrNoGameInRoom)
	_, ok := sm.GetPlayer(1)
	require.False(t, ok, "removal frees every player of the room")
	_, ok = sm.GetPlayer(2)
	require.False(t, ok)
	require.Equal(t, 1, sink.count(EventSessionEnd))

	require.ErrorIs(t, sm.Remove(100), ErrNoGameInRoom)

	// Everyone may start over after the teardown.
	_, err = sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
}

func TestRemoveSessionAfterGameEnd(t *testing.T) {
	sm, _ := newTestManager()
	game, err := sm.Create(100, BaseUser{ID: 1, Name: "alice"})
	require.NoError(t, err)
	_, err = sm.Join(100, BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)
	require.NoError(t, game.Start())

	// End the round: the player list empties, but the user index must
	// still be cleaned up by the teardown.
	game.End()
	require.NoError(t, sm.Remove(100))

	_, ok := sm.GetPlayer(1)
	require.False(t, ok)
	_, ok = sm.GetPlayer(2)
	require.False(t, ok)
}
