package monopoly

import "errors"

// Lookup and precondition errors. Each condition gets its own sentinel so
// the transport layer can map it to a distinct user-facing message.
var (
	// ErrNoGameInRoom is returned when a room has no active game, or a
	// user is not part of any game.
	ErrNoGameInRoom = errors.New("no game in this room")

	// ErrGameExists is returned when creating a session in a room that
	// already has one.
	ErrGameExists = errors.New("room already has an active game")

	// ErrLobbyClosed is returned when joining a game that is no longer
	// open for players.
	ErrLobbyClosed = errors.New("lobby is closed")

	// ErrAlreadyJoined is returned when a user tries to join a game twice,
	// or to join a second game while already playing in another room.
	ErrAlreadyJoined = errors.New("user already joined a game")

	// ErrNotEnoughPlayers is returned by Start when the lobby holds fewer
	// players than the minimum.
	ErrNotEnoughPlayers = errors.New("not enough players to start")

	// ErrNotInGame is returned when a player is not part of this game.
	ErrNotInGame = errors.New("player is not in this game")
)

// Turn progression errors.
var (
	// ErrGameNotStarted is returned for turn operations on a lobby.
	ErrGameNotStarted = errors.New("game is not started")

	// ErrNotYourTurn is returned when a player acts out of turn.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrPendingPurchase is returned by NextTurn while a buy/skip decision
	// is outstanding.
	ErrPendingPurchase = errors.New("purchase decision is pending")

	// ErrNoPendingPurchase is returned for buy/skip calls when no purchase
	// decision is outstanding.
	ErrNoPendingPurchase = errors.New("no purchase decision is pending")
)

// Domain invariant violations. Hitting one of these means the caller is
// buggy, not the user.
var (
	// ErrNotPurchasable is returned when buying a field that cannot be owned.
	ErrNotPurchasable = errors.New("field cannot be purchased")

	// ErrFieldOwned is returned when buying a field that already has an owner.
	ErrFieldOwned = errors.New("field already has an owner")

	// ErrNotOwner is returned for mortgage operations on a field the player
	// does not own.
	ErrNotOwner = errors.New("player does not own this field")

	// ErrFieldMortgaged is returned when mortgaging an already mortgaged field.
	ErrFieldMortgaged = errors.New("field is already mortgaged")

	// ErrFieldNotMortgaged is returned when redeeming a field that is not
	// mortgaged.
	ErrFieldNotMortgaged = errors.New("field is not mortgaged")
)
