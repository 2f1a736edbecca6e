package handler

import (
	tele "gopkg.in/telebot.v3"
)

// Callback data values routed by the bot's OnCallback handler.
const (
	CallbackJoin      = "join"
	CallbackStartGame = "start_game"
	CallbackRoll      = "roll"
	CallbackBuy       = "buy"
	CallbackSkip      = "skip"
)

// RoomMarkup builds the lobby keyboard: join always, start once enough
// players are in.
func RoomMarkup(players, minPlayers int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	join := markup.Data("☕ Join", CallbackJoin)
	if players >= minPlayers {
		start := markup.Data("🎮 Start", CallbackStartGame)
		markup.Inline(markup.Row(join), markup.Row(start))
	} else {
		markup.Inline(markup.Row(join))
	}
	return markup
}

// TurnMarkup builds the single roll button shown on the current player's
// turn.
func TurnMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	roll := markup.Data("🎲 Roll the dice", CallbackRoll)
	markup.Inline(markup.Row(roll))
	return markup
}

// BuyMarkup builds the purchase decision keyboard.
func BuyMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	buy := markup.Data("💰 Buy", CallbackBuy)
	skip := markup.Data("🙅 Pass", CallbackSkip)
	markup.Inline(markup.Row(buy, skip))
	return markup
}
