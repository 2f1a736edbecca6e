package handler

import (
	"fmt"
	"strings"

	"telegram-monopoly-bot/internal/monopoly"
)

// HelpMessage lists all player-facing commands.
const HelpMessage = "🎲 <b>Monopoly</b>\n\n" +
	"Play in a group chat:\n" +
	"/game - create a room\n" +
	"/join - join the room\n" +
	"/start - begin the game\n" +
	"/board - show the board\n" +
	"/leave - leave the game\n" +
	"/stop - close the room (owner only)\n\n" +
	"/stats - your lifetime record\n" +
	"/top - hall of fame"

// NoRoomMessage is sent when a command needs a room that doesn't exist.
const NoRoomMessage = "👀 There is no room in this chat yet. Create one with /game."

// mention renders a player as a clickable HTML link.
func mention(p *monopoly.Player) string {
	if p == nil {
		return "someone"
	}
	return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, p.UserID, p.Name)
}

// RoomStatus renders the lobby overview shown under the join keyboard.
func RoomStatus(g *monopoly.Game, minPlayers int) string {
	var b strings.Builder
	b.WriteString("🎲 <b>Monopoly room</b>\n\n")
	fmt.Fprintf(&b, "👑 Owner: %s\n", mention(g.Owner))
	fmt.Fprintf(&b, "☕ Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		fmt.Fprintf(&b, "  • %s\n", mention(p))
	}
	if len(g.Players) < minPlayers {
		fmt.Fprintf(&b, "\nAt least %d players are needed to start.", minPlayers)
	} else {
		b.WriteString("\nReady when you are. The owner can press Start.")
	}
	return b.String()
}

// NewGameMessage announces the shuffled turn order of a freshly started game.
func NewGameMessage(g *monopoly.Game) string {
	var b strings.Builder
	b.WriteString("🎉 <b>The game begins!</b>\n\nTurn order:\n")
	for i, p := range g.Players {
		fmt.Fprintf(&b, "%d. %s — %d 💵\n", i+1, mention(p), p.Balance)
	}
	fmt.Fprintf(&b, "\n🎲 %s rolls first.", mention(g.CurrentPlayer()))
	return b.String()
}

// BoardView renders the full board with ownership marks.
func BoardView(g *monopoly.Game) string {
	var b strings.Builder
	b.WriteString("🗺 <b>Board</b>\n")
	for i, f := range g.Board() {
		fmt.Fprintf(&b, "%2d %s %s", i, f.Kind().Symbol(), f.Name())
		if pf, ok := f.(monopoly.Purchasable); ok {
			if owner := pf.Owner(); owner != nil {
				fmt.Fprintf(&b, " — %s", owner.Name)
				if pf.IsMortgaged() {
					b.WriteString(" 🔒")
				}
			} else {
				fmt.Fprintf(&b, " (%d)", pf.BuyCost())
			}
		}
		for _, p := range g.Players {
			if p.Position == i {
				fmt.Fprintf(&b, " 👤%s", p.Name)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// EndGameMessage summarizes a finished game.
func EndGameMessage(g *monopoly.Game) string {
	var b strings.Builder
	b.WriteString("🏁 <b>Game over!</b>\n")
	if g.Winner != nil {
		fmt.Fprintf(&b, "🏆 Winner: %s\n", mention(g.Winner))
	} else {
		b.WriteString("Nobody made it to the end.\n")
	}
	if len(g.Bankrupts) > 0 {
		b.WriteString("\n💸 Bankrupts:\n")
		for _, p := range g.Bankrupts {
			fmt.Fprintf(&b, "  • %s\n", mention(p))
		}
	}
	fmt.Fprintf(&b, "\nRounds played: %d", g.RoundCounter)
	return b.String()
}

// eventLine renders one engine event as a journal line. Events that only
// matter to the engine render as an empty string and are skipped.
func eventLine(e monopoly.Event) string {
	switch e.Type {
	case monopoly.EventPlayerDice:
		return fmt.Sprintf("🎲 %s rolls %s.", mention(e.Player), e.Data)
	case monopoly.EventPlayerMove:
		return fmt.Sprintf("🚶 %s lands on %s.", mention(e.Player), fieldAt(e))
	case monopoly.EventPlayerBuy:
		if bf, ok := landedField(e).(*monopoly.BuyField); ok {
			if bf.IsReward() {
				return fmt.Sprintf("💸 %s receives %d.", mention(e.Player), bf.Cost())
			}
			return fmt.Sprintf("💸 %s pays %d for %s.", mention(e.Player), bf.Cost(), bf.Name())
		}
		return fmt.Sprintf("🏠 %s buys %s.", mention(e.Player), e.Data)
	case monopoly.EventPlayerChance:
		return fmt.Sprintf("❔ %s draws a card: %s.", mention(e.Player), e.Data)
	case monopoly.EventPlayerPrison:
		return fmt.Sprintf("⚜️ %s visits the prison.", mention(e.Player))
	case monopoly.EventPlayerCasino:
		return fmt.Sprintf("🎰 %s tries their luck at the casino.", mention(e.Player))
	case monopoly.EventGameJoin:
		return fmt.Sprintf("☕ %s joins the game.", mention(e.Player))
	case monopoly.EventGameLeave:
		if e.Data == "lose" {
			return fmt.Sprintf("💸 %s goes bankrupt and leaves the game.", mention(e.Player))
		}
		return fmt.Sprintf("🚪 %s leaves the game.", mention(e.Player))
	case monopoly.EventGameNext:
		return fmt.Sprintf("🍰 Next up: %s.", mention(e.Player))
	default:
		return ""
	}
}

// landedField returns the field the event's player currently stands on,
// or nil when the event carries no position.
func landedField(e monopoly.Event) monopoly.Field {
	if e.Game == nil || e.Player == nil {
		return nil
	}
	board := e.Game.Board()
	if e.Player.Position < 0 || e.Player.Position >= len(board) {
		return nil
	}
	return board[e.Player.Position]
}

// fieldAt names the field the event's player currently stands on.
func fieldAt(e monopoly.Event) string {
	f := landedField(e)
	if f == nil {
		return "?"
	}
	return f.Kind().Symbol() + " " + f.Name()
}

// buyPrompt renders the purchase decision message for a pending buy state.
func buyPrompt(e monopoly.Event) string {
	if e.Game == nil || e.Player == nil {
		return ""
	}
	board := e.Game.Board()
	f, ok := board[e.Player.Position].(monopoly.Purchasable)
	if !ok {
		return ""
	}
	return fmt.Sprintf(
		"💰 %s, buy <b>%s</b> for %d?\nYour balance: %d",
		mention(e.Player), f.Name(), f.BuyCost(), e.Player.Balance,
	)
}
