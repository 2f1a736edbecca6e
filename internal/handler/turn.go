package handler

import (
	"errors"

	tele "gopkg.in/telebot.v3"

	"telegram-monopoly-bot/internal/monopoly"
	"telegram-monopoly-bot/internal/pkg/lock"
)

// TurnHandler handles in-game actions: rolling the dice and resolving a
// pending purchase. Every action takes the room lock so that turns in one
// room never interleave.
type TurnHandler struct {
	sessions *monopoly.SessionManager
	roomLock *lock.RoomLock
}

// NewTurnHandler creates a new TurnHandler.
func NewTurnHandler(sessions *monopoly.SessionManager, roomLock *lock.RoomLock) *TurnHandler {
	return &TurnHandler{
		sessions: sessions,
		roomLock: roomLock,
	}
}

// currentGame resolves the chat's game and the sender's player in it.
func (h *TurnHandler) currentGame(c tele.Context) (*monopoly.Game, *monopoly.Player, error) {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil, nil, monopoly.ErrNoGameInRoom
	}
	game, err := h.sessions.GetGame(chat.ID)
	if err != nil {
		return nil, nil, err
	}
	player := game.GetPlayer(sender.ID)
	if player == nil {
		return nil, nil, monopoly.ErrNotInGame
	}
	return game, player, nil
}

// HandleRoll handles the roll button and the /roll command: the current
// player throws the dice and their move is resolved.
func (h *TurnHandler) HandleRoll(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		game, player, err := h.currentGame(c)
		switch {
		case errors.Is(err, monopoly.ErrNoGameInRoom):
			return respond(c, NoRoomMessage)
		case errors.Is(err, monopoly.ErrNotInGame):
			return respond(c, "👀 You are not in this game.")
		case err != nil:
			return respond(c, "❌ Something went wrong, please try again.")
		}

		if !game.Started {
			return respond(c, "🌳 The game has not started yet.")
		}
		if game.CurrentPlayer() != player {
			return respond(c, "☕ It is not your turn.")
		}

		err = game.ProcessTurn(game.RollDice())
		if errors.Is(err, monopoly.ErrPendingPurchase) {
			return respond(c, "💰 Decide on the purchase first.")
		}
		// The event sink reports the roll and its outcome.
		return ack(c)
	})
}

// HandleBuy handles the buy button: the current player purchases the
// field they stand on.
func (h *TurnHandler) HandleBuy(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		_, player, err := h.currentGame(c)
		if err != nil {
			return respond(c, "👀 You are not in this game.")
		}

		err = player.BuyField()
		switch {
		case errors.Is(err, monopoly.ErrNoPendingPurchase):
			return respond(c, "👀 There is nothing to buy right now.")
		case errors.Is(err, monopoly.ErrNotYourTurn):
			return respond(c, "☕ It is not your turn.")
		case errors.Is(err, monopoly.ErrFieldOwned):
			return respond(c, "🍓 Somebody already owns this field.")
		case err != nil:
			return respond(c, "❌ Could not buy the field.")
		}
		return ack(c)
	})
}

// HandleSkip handles the pass button: the current player declines the
// purchase.
func (h *TurnHandler) HandleSkip(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		_, player, err := h.currentGame(c)
		if err != nil {
			return respond(c, "👀 You are not in this game.")
		}

		err = player.SkipField()
		switch {
		case errors.Is(err, monopoly.ErrNoPendingPurchase):
			return respond(c, "👀 There is nothing to pass on right now.")
		case errors.Is(err, monopoly.ErrNotYourTurn):
			return respond(c, "☕ It is not your turn.")
		case err != nil:
			return respond(c, "❌ Could not pass on the field.")
		}
		return ack(c)
	})
}

// HandleBoard handles the /board command: renders the board with all
// ownership markers and player positions.
func (h *TurnHandler) HandleBoard(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		game, err := h.sessions.GetGame(chat.ID)
		if err != nil {
			return c.Reply(NoRoomMessage, tele.ModeHTML)
		}
		return c.Send(BoardView(game), tele.ModeHTML)
	})
}

// respond answers a callback with a toast or replies to a message,
// depending on how the action arrived.
func respond(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text})
	}
	return c.Reply(text, tele.ModeHTML)
}

// ack silently acknowledges a callback so the button stops spinning.
func ack(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond()
	}
	return nil
}
