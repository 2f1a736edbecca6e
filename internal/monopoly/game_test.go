package monopoly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartNeedsTwoPlayers(t *testing.T) {
	sink := &recordingHandler{}
	game := NewGame(sink, 100, BaseUser{ID: 1, Name: "alice"}, testGameConfig(1))

	require.ErrorIs(t, game.Start(), ErrNotEnoughPlayers)
	require.False(t, game.Started)

	_, err := game.AddPlayer(BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)
	require.NoError(t, game.Start())
	require.True(t, game.Started)
	require.False(t, game.Open, "starting closes the lobby")
}

// TestStartTurnOrder covers scenario: create room with owner A, join B,
// start. Turn order is some permutation of [A, B] and the first player's
// turn state is Next.
func TestStartTurnOrder(t *testing.T) {
	game, sink := newStartedGame(1)

	require.Len(t, game.Players, 2)
	ids := []int64{game.Players[0].UserID, game.Players[1].UserID}
	require.ElementsMatch(t, []int64{1, 2}, ids)
	require.Equal(t, TurnNext, game.TurnState)
	require.NotNil(t, game.CurrentPlayer())
	require.Equal(t, 1, sink.count(EventGameStart))
}

func TestStartResetsPlayers(t *testing.T) {
	game, _ := newStartedGame(1)
	for _, p := range game.Players {
		require.Equal(t, int64(DefaultStartBalance), p.Balance)
		require.Equal(t, 0, p.Position)
		require.Empty(t, p.Fields)
	}
}

// TestBoardsIndependent checks that two games never share field
// instances: ownership taken in one game must not leak into the other.
func TestBoardsIndependent(t *testing.T) {
	gameA, _ := newStartedGame(1)
	gameB, _ := newStartedGame(2)

	gameA.Players[0].takeOwnership(gameA.Board()[5].(Purchasable))

	require.NotNil(t, gameA.Board()[5].(Purchasable).Owner())
	require.Nil(t, gameB.Board()[5].(Purchasable).Owner())
}

func TestRestartClearsOwnership(t *testing.T) {
	game, _ := newStartedGame(1)
	game.Players[0].takeOwnership(game.Board()[5].(Purchasable))

	game.Open = true
	require.NoError(t, game.Start())

	require.Nil(t, game.Board()[5].(Purchasable).Owner(), "a fresh board has no owners")
}

// TestProcessTurnPendingPurchase covers scenario: the current player
// rolls onto an unowned rent field. The turn stalls in the buy state and
// NextTurn is rejected until the decision resolves.
func TestProcessTurnPendingPurchase(t *testing.T) {
	game, _ := newStartedGame(1)
	p := game.CurrentPlayer()

	require.NoError(t, game.ProcessTurn(Dice{First: 2, Second: 3}))

	require.Equal(t, 5, p.Position)
	require.Equal(t, TurnBuy, game.TurnState)
	require.Same(t, p, game.CurrentPlayer(), "turn must not advance while the decision is pending")
	require.ErrorIs(t, game.NextTurn(), ErrPendingPurchase)
	require.ErrorIs(t, game.ProcessTurn(Dice{First: 1, Second: 1}), ErrPendingPurchase)

	require.NoError(t, p.BuyField())
	require.Equal(t, int64(DefaultStartBalance-200), p.Balance)
	require.Same(t, p, game.Board()[5].(Purchasable).Owner())
	require.Equal(t, TurnNext, game.TurnState)
	require.NotSame(t, p, game.CurrentPlayer(), "resolving the buy advances the turn")
}

func TestSkipFieldResolvesPurchase(t *testing.T) {
	game, _ := newStartedGame(1)
	p := game.CurrentPlayer()

	require.NoError(t, game.ProcessTurn(Dice{First: 2, Second: 3}))
	require.NoError(t, p.SkipField())

	require.Nil(t, game.Board()[5].(Purchasable).Owner(), "skipping never buys")
	require.Equal(t, TurnNext, game.TurnState)
	require.NotSame(t, p, game.CurrentPlayer())
}

func TestBuyFieldPreconditions(t *testing.T) {
	game, _ := newStartedGame(1)
	p := game.CurrentPlayer()
	other := game.Players[1]
	if other == p {
		other = game.Players[0]
	}

	require.ErrorIs(t, p.BuyField(), ErrNoPendingPurchase)
	require.ErrorIs(t, p.SkipField(), ErrNoPendingPurchase)

	require.NoError(t, game.ProcessTurn(Dice{First: 2, Second: 3}))
	require.ErrorIs(t, other.BuyField(), ErrNotYourTurn)
	require.ErrorIs(t, other.SkipField(), ErrNotYourTurn)
}

func TestProcessTurnAdvancesOnPlainField(t *testing.T) {
	game, sink := newStartedGame(1)
	p := game.CurrentPlayer()

	// Index 2 is a treasury field: no decision, so the turn advances
	// automatically.
	require.NoError(t, game.ProcessTurn(Dice{First: 1, Second: 1}))

	require.Equal(t, 2, p.Position)
	require.NotSame(t, p, game.CurrentPlayer())
	require.Equal(t, 1, sink.count(EventGameNext))
	require.Equal(t, 1, sink.count(EventPlayerDice))
}

// TestRentBankruptcyEndsGame covers scenario: a player who cannot cover
// rent is eliminated and the sole remaining player wins.
func TestRentBankruptcyEndsGame(t *testing.T) {
	game, sink := newStartedGame(1)
	visitor := game.CurrentPlayer()
	owner := game.Players[0]
	if owner == visitor {
		owner = game.Players[1]
	}
	owner.takeOwnership(game.Board()[5].(Purchasable))
	visitor.Balance = 30 // cannot cover the rent of 60

	require.NoError(t, game.ProcessTurn(Dice{First: 2, Second: 3}))

	require.Equal(t, int64(0), visitor.Balance)
	require.False(t, game.Started)
	require.Same(t, owner, game.Winner)
	require.Contains(t, game.Bankrupts, visitor)
	require.Equal(t, 1, sink.count(EventGameEnd))
}

// TestRemoveSolePlayer covers the degenerate scenario: removing the last
// player mid-game ends the game without a winner and without panicking.
func TestRemoveSolePlayer(t *testing.T) {
	game, _ := newStartedGame(1)
	first := game.Players[0]
	second := game.Players[1]

	require.NoError(t, game.RemovePlayer(first.UserID))
	// The survivor won that round; reopen the degenerate case by hand.
	game.Started = true
	game.Players = []*Player{second}
	game.Winner = nil

	require.NoError(t, game.RemovePlayer(second.UserID))
	require.Empty(t, game.Players)
	require.False(t, game.Started)
	require.Nil(t, game.Winner, "no winner in the degenerate case")
}

func TestRemoveUnknownPlayer(t *testing.T) {
	game, _ := newStartedGame(1)
	require.ErrorIs(t, game.RemovePlayer(999), ErrNotInGame)
}

func TestVoluntaryLeaveTags(t *testing.T) {
	sink := &recordingHandler{}
	game := NewGame(sink, 100, BaseUser{ID: 1, Name: "alice"}, testGameConfig(1))
	for _, u := range []BaseUser{{ID: 2, Name: "bob"}, {ID: 3, Name: "carol"}} {
		_, err := game.AddPlayer(u)
		require.NoError(t, err)
	}
	require.NoError(t, game.Start())

	leaver := game.Players[0]
	require.NoError(t, game.RemovePlayer(leaver.UserID))

	var tag string
	for _, e := range sink.events {
		if e.Type == EventGameLeave {
			tag = e.Data
		}
	}
	require.Equal(t, "win", tag, "a solvent leaver is a win candidate")
	require.Len(t, game.Players, 2)
	require.True(t, game.Started)
}

func TestLeaveReleasesOwnership(t *testing.T) {
	sink := &recordingHandler{}
	game := NewGame(sink, 100, BaseUser{ID: 1, Name: "alice"}, testGameConfig(1))
	for _, u := range []BaseUser{{ID: 2, Name: "bob"}, {ID: 3, Name: "carol"}} {
		_, err := game.AddPlayer(u)
		require.NoError(t, err)
	}
	require.NoError(t, game.Start())

	leaver := game.Players[0]
	field := game.Board()[5].(Purchasable)
	leaver.takeOwnership(field)

	require.NoError(t, game.RemovePlayer(leaver.UserID))
	require.Nil(t, field.Owner(), "ownership ends with the owner's membership")
}

func TestJoinClosedLobby(t *testing.T) {
	game, _ := newStartedGame(1)
	_, err := game.AddPlayer(BaseUser{ID: 9, Name: "dave"})
	require.ErrorIs(t, err, ErrLobbyClosed)
}

func TestJoinTwice(t *testing.T) {
	sink := &recordingHandler{}
	game := NewGame(sink, 100, BaseUser{ID: 1, Name: "alice"}, testGameConfig(1))
	_, err := game.AddPlayer(BaseUser{ID: 1, Name: "alice"})
	require.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestRoundCounterWraps(t *testing.T) {
	game, _ := newStartedGame(1)

	require.Equal(t, 0, game.RoundCounter)
	require.NoError(t, game.NextTurn())
	require.NoError(t, game.NextTurn())
	require.Equal(t, 1, game.RoundCounter, "a full cycle is one round")
}

// TestSinkPanicContained proves that a broken sink cannot roll back a
// completed state transition.
func TestSinkPanicContained(t *testing.T) {
	game := NewGame(panicHandler{}, 100, BaseUser{ID: 1, Name: "alice"}, testGameConfig(1))
	_, err := game.AddPlayer(BaseUser{ID: 2, Name: "bob"})
	require.NoError(t, err)
	require.NoError(t, game.Start())
	require.True(t, game.Started)

	p := game.CurrentPlayer()
	require.NoError(t, game.ProcessTurn(Dice{First: 1, Second: 1}))
	require.Equal(t, 2, p.Position)
}
