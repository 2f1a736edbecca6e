package monopoly

import "fmt"

// DefaultStartBalance is every player's balance when a game starts.
const DefaultStartBalance = 15000

// BaseUser is the transport-agnostic identity a Player is created from,
// so the engine does not depend on any particular chat platform.
type BaseUser struct {
	ID   int64
	Name string
}

// Player is one participant of a single game. Players are created on join,
// removed on leave, bankruptcy or win, and are never shared across games.
// Two players are the same player iff their user IDs match.
type Player struct {
	game *Game

	UserID int64
	Name   string

	// Balance is mutated only through Pay and Give.
	Balance int64

	// Position is an index into the game's board.
	Position int

	// Fields holds the purchasable fields this player currently owns.
	Fields []Purchasable
}

func newPlayer(g *Game, user BaseUser) *Player {
	return &Player{
		game:    g,
		UserID:  user.ID,
		Name:    user.Name,
		Balance: g.startBalance,
	}
}

// Pay deducts amount from the balance. The balance never goes negative:
// a shortfall pays out whatever is left and reports bankruptcy, which the
// caller must hand to the game exactly once.
func (p *Player) Pay(amount int64) (paid int64, bankrupt bool) {
	if amount > p.Balance {
		paid = p.Balance
		p.Balance = 0
		return paid, true
	}
	p.Balance -= amount
	return amount, false
}

// Give adds amount to the balance. There is no upper bound.
func (p *Player) Give(amount int64) {
	p.Balance += amount
}

// Move advances the player clockwise by steps fields, wrapping at the
// board edge, and returns the new position.
func (p *Player) Move(steps int) int {
	return p.MoveTo(p.Position + steps)
}

// MoveTo places the player on the given board index, wrapping it into
// the board range, and returns the new position.
func (p *Player) MoveTo(index int) int {
	size := len(p.game.board)
	index %= size
	if index < 0 {
		index += size
	}
	p.Position = index
	return p.Position
}

// IsCurrent reports whether it is this player's turn.
func (p *Player) IsCurrent() bool {
	return p.game.CurrentPlayer() == p
}

// BuyField buys the field the player is standing on, resolving the
// pending purchase decision.
func (p *Player) BuyField() error {
	return p.game.buyField(p)
}

// SkipField declines the pending purchase decision and lets the turn
// advance.
func (p *Player) SkipField() error {
	return p.game.skipField(p)
}

// Mortgage mortgages an owned field: the player receives the mortgage
// value and the field stops collecting rent.
func (p *Player) Mortgage(f Purchasable) error {
	if f.Owner() != p {
		return ErrNotOwner
	}
	if f.IsMortgaged() {
		return ErrFieldMortgaged
	}
	p.Give(f.MortgageValue())
	f.setMortgaged(true)
	p.pushEvent(EventGameState, fmt.Sprintf("mortgage %s", f.Name()))
	return nil
}

// Redeem lifts the mortgage on an owned field so it collects rent again.
func (p *Player) Redeem(f Purchasable) error {
	if f.Owner() != p {
		return ErrNotOwner
	}
	if !f.IsMortgaged() {
		return ErrFieldNotMortgaged
	}
	_, bankrupt := p.Pay(f.RedemptionCost())
	f.setMortgaged(false)
	p.pushEvent(EventGameState, fmt.Sprintf("redeem %s", f.Name()))
	if bankrupt {
		p.game.declareBankrupt(p)
	}
	return nil
}

// pushEvent emits an event with this player and game filled in.
func (p *Player) pushEvent(t EventType, data string) {
	p.game.push(p, t, data)
}

// takeOwnership records f as owned by the player.
func (p *Player) takeOwnership(f Purchasable) {
	f.setOwner(p)
	p.Fields = append(p.Fields, f)
}

// releaseFields clears every ownership this player holds. Called when the
// player leaves the game.
func (p *Player) releaseFields() {
	for _, f := range p.Fields {
		f.setOwner(nil)
		f.setMortgaged(false)
	}
	p.Fields = nil
}

func (p *Player) String() string {
	return p.Name
}
