// Package handler provides Telegram bot command handlers.
package handler

import (
	"errors"

	tele "gopkg.in/telebot.v3"

	"telegram-monopoly-bot/internal/config"
	"telegram-monopoly-bot/internal/monopoly"
	"telegram-monopoly-bot/internal/pkg/lock"
)

// SessionHandler handles room lifecycle commands: creating a lobby,
// joining it, starting the game and tearing it down.
type SessionHandler struct {
	cfg      *config.Config
	sessions *monopoly.SessionManager
	roomLock *lock.RoomLock
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(cfg *config.Config, sessions *monopoly.SessionManager, roomLock *lock.RoomLock) *SessionHandler {
	return &SessionHandler{
		cfg:      cfg,
		sessions: sessions,
		roomLock: roomLock,
	}
}

// baseUser converts the Telegram sender into an engine user.
func baseUser(sender *tele.User) monopoly.BaseUser {
	name := sender.Username
	if name == "" {
		name = sender.FirstName
	}
	return monopoly.BaseUser{ID: sender.ID, Name: name}
}

// minPlayers resolves the lobby size requirement from config.
func (h *SessionHandler) minPlayers() int {
	if h.cfg.Game.MinPlayers > 0 {
		return h.cfg.Game.MinPlayers
	}
	return monopoly.DefaultMinPlayers
}

// HandleNewGame handles the /game command: creates a lobby in this chat.
func (h *SessionHandler) HandleNewGame(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil
	}
	if chat.Type == tele.ChatPrivate {
		return c.Reply("👀 Games are played in group chats.")
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		game, err := h.sessions.Create(chat.ID, baseUser(sender))
		switch {
		case errors.Is(err, monopoly.ErrGameExists):
			return c.Reply("🌳 This chat already has a room. Join it with /join.")
		case errors.Is(err, monopoly.ErrAlreadyJoined):
			return c.Reply("👀 You are already playing in another chat.")
		case err != nil:
			return c.Reply("❌ Could not create a room, please try again.")
		}

		return c.Send(
			RoomStatus(game, h.minPlayers()),
			tele.ModeHTML,
			RoomMarkup(len(game.Players), h.minPlayers()),
		)
	})
}

// HandleJoin handles the /join command and the join button.
func (h *SessionHandler) HandleJoin(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		_, err := h.sessions.Join(chat.ID, baseUser(sender))
		switch {
		case errors.Is(err, monopoly.ErrNoGameInRoom):
			return c.Reply(NoRoomMessage, tele.ModeHTML)
		case errors.Is(err, monopoly.ErrLobbyClosed):
			return c.Reply("🔒 The game already started, you cannot join now.")
		case errors.Is(err, monopoly.ErrAlreadyJoined):
			return c.Reply("🍰 You are already in.")
		case err != nil:
			return c.Reply("❌ Could not join, please try again.")
		}

		game, err := h.sessions.GetGame(chat.ID)
		if err != nil {
			return nil
		}
		return c.Send(
			RoomStatus(game, h.minPlayers()),
			tele.ModeHTML,
			RoomMarkup(len(game.Players), h.minPlayers()),
		)
	})
}

// HandleStartGame handles the /start command and the start button. Only
// the room owner can begin the game.
func (h *SessionHandler) HandleStartGame(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil
	}
	if chat.Type == tele.ChatPrivate {
		return c.Reply(HelpMessage, tele.ModeHTML)
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		game, err := h.sessions.GetGame(chat.ID)
		if err != nil {
			return c.Reply(NoRoomMessage, tele.ModeHTML)
		}
		if game.Started {
			return c.Reply("🌳 The game is already in progress.")
		}
		if game.Owner == nil || game.Owner.UserID != sender.ID {
			return c.Reply("🍓 Only the room owner can start the game.")
		}

		if err := game.Start(); err != nil {
			if errors.Is(err, monopoly.ErrNotEnoughPlayers) {
				return c.Reply("☕ Not enough players yet, invite some friends with /join.")
			}
			return c.Reply("❌ Could not start the game, please try again.")
		}
		// The event sink announces the new game and the first turn.
		return nil
	})
}

// HandleLeave handles the /leave command: the sender leaves their game.
func (h *SessionHandler) HandleLeave(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	return h.roomLock.WithLock(chat.ID, func() error {
		player, ok := h.sessions.GetPlayer(sender.ID)
		if !ok {
			return c.Reply("👀 You are not in a game.")
		}
		if err := h.sessions.Leave(player); err != nil {
			return c.Reply("❌ Could not leave the game, please try again.")
		}
		return c.Reply("🚪 You left the game.")
	})
}

// HandleStop handles the /stop command: the owner (or an admin) force
// closes the room.
func (h *SessionHandler) HandleStop(c tele.Context) error {
	chat := c.Chat()
	sender := c.Sender()
	if chat == nil || sender == nil {
		return nil
	}

	removed := false
	err := h.roomLock.WithLock(chat.ID, func() error {
		game, err := h.sessions.GetGame(chat.ID)
		if err != nil {
			return c.Reply(NoRoomMessage, tele.ModeHTML)
		}

		isOwner := game.Owner != nil && game.Owner.UserID == sender.ID
		if !isOwner && !h.cfg.IsAdmin(sender.ID) {
			return c.Reply("🍓 Only the room owner can close the room.")
		}

		if err := h.sessions.Remove(chat.ID); err != nil {
			return c.Reply("❌ Could not close the room, please try again.")
		}
		removed = true
		return c.Reply("🧹 The room was closed.\n"+EndGameMessage(game), tele.ModeHTML)
	})
	if removed {
		h.roomLock.Forget(chat.ID)
	}
	return err
}
