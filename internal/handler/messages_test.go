package handler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"telegram-monopoly-bot/internal/monopoly"
)

type nopSink struct{}

func (nopSink) Push(monopoly.Event) {}

func newLobby(t *testing.T) *monopoly.Game {
	t.Helper()
	g := monopoly.NewGame(nopSink{}, -100, monopoly.BaseUser{ID: 1, Name: "alice"}, &monopoly.GameConfig{
		Rand: rand.New(rand.NewSource(1)),
	})
	_, err := g.AddPlayer(monopoly.BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)
	return g
}

func TestRoomStatus(t *testing.T) {
	g := newLobby(t)

	text := RoomStatus(g, 2)
	require.Contains(t, text, "alice")
	require.Contains(t, text, "bob")
	require.Contains(t, text, "Players (2)")
	require.Contains(t, text, "The owner can press Start")

	text = RoomStatus(g, 3)
	require.Contains(t, text, "At least 3 players are needed")
}

func TestNewGameMessageListsTurnOrder(t *testing.T) {
	g := newLobby(t)
	require.NoError(t, g.Start())

	text := NewGameMessage(g)
	require.Contains(t, text, "Turn order")
	require.Contains(t, text, g.CurrentPlayer().Name)
}

func TestBoardViewShowsCostsAndPositions(t *testing.T) {
	g := newLobby(t)
	require.NoError(t, g.Start())

	text := BoardView(g)
	require.Contains(t, text, "Start")
	require.Contains(t, text, "(200)", "unowned fields show their price")
	require.Contains(t, text, "👤alice", "players are marked on their field")
}

func TestEndGameMessage(t *testing.T) {
	g := newLobby(t)
	text := EndGameMessage(g)
	require.Contains(t, text, "Nobody made it")

	g.Winner = g.Players[0]
	text = EndGameMessage(g)
	require.Contains(t, text, "Winner")
	require.Contains(t, text, g.Winner.Name)
}

func TestEventLineRendering(t *testing.T) {
	g := newLobby(t)
	require.NoError(t, g.Start())
	p := g.CurrentPlayer()

	line := eventLine(monopoly.Event{
		RoomID: g.RoomID, Player: p, Type: monopoly.EventPlayerDice,
		Data: "2 + 5 (7)", Game: g,
	})
	require.Contains(t, line, p.Name)
	require.Contains(t, line, "2 + 5 (7)")

	line = eventLine(monopoly.Event{
		RoomID: g.RoomID, Player: p, Type: monopoly.EventPlayerMove, Game: g,
	})
	require.Contains(t, line, "lands on")

	// Engine-internal events render as nothing.
	line = eventLine(monopoly.Event{Type: monopoly.EventGameState})
	require.Empty(t, line)
}

func TestRoomMarkupGatesStartButton(t *testing.T) {
	markup := RoomMarkup(1, 2)
	require.Len(t, markup.InlineKeyboard, 1, "start hidden until enough players")

	markup = RoomMarkup(2, 2)
	require.Len(t, markup.InlineKeyboard, 2)
}
