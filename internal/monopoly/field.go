package monopoly

import (
	"fmt"
	"strconv"
)

// FieldKind enumerates the nine kinds of board fields.
type FieldKind int

const (
	// KindBuy is a flat pay/receive field (start, taxes). No ownership.
	KindBuy FieldKind = iota
	// KindRent is a purchasable street that collects rent for its owner.
	KindRent
	// KindAirport is a purchasable field whose rent is meant to scale with
	// the number of airports the owner holds.
	KindAirport
	// KindCommunicate is a purchasable field whose rent is meant to scale
	// with the visitor's dice roll.
	KindCommunicate
	// KindChance triggers a chance card.
	KindChance
	// KindPrize triggers a community treasury card.
	KindPrize
	// KindTeleport relocates the landing player to a fixed field.
	KindTeleport
	// KindPrison is the prison field.
	KindPrison
	// KindCasino is the casino field.
	KindCasino
)

var fieldKindSymbols = [...]string{"💸", "✨", "✈️", "📱", "❓", "💎", "🌀", "👮", "🎰"}

var fieldKindNames = [...]string{
	"buy", "rent", "airport", "communicate", "chance",
	"prize", "teleport", "prison", "casino",
}

func (k FieldKind) String() string {
	if k < 0 || int(k) >= len(fieldKindNames) {
		return "unknown"
	}
	return fieldKindNames[k]
}

// Symbol returns the emoji used to draw this kind on the board.
func (k FieldKind) Symbol() string {
	if k < 0 || int(k) >= len(fieldKindSymbols) {
		return "?"
	}
	return fieldKindSymbols[k]
}

// FieldColor groups rent fields. Owning a full color group is the basis of
// the set bonus and building rules.
type FieldColor int

const (
	ColorBrown FieldColor = iota
	ColorSky
	ColorPurple
	ColorOrange
	ColorRed
	ColorYellow
	ColorGreen
	ColorBlue
)

var fieldColorSymbols = [...]string{"🟤", "⚪", "🟣", "🟠", "🔴", "🟡", "🟢", "🔵"}

// Symbol returns the emoji used to draw this color on the board.
func (c FieldColor) Symbol() string {
	if c < 0 || int(c) >= len(fieldColorSymbols) {
		return "?"
	}
	return fieldColorSymbols[c]
}

// Field is a single cell on the board. Landing on it triggers its effect
// exactly once, synchronously, before the turn may advance.
type Field interface {
	Kind() FieldKind
	Name() string

	// onLanded applies the field's landing effect. depth tracks teleport
	// chains, see Game.landOn.
	onLanded(g *Game, p *Player, depth int)
}

// Purchasable is implemented by the field kinds a player can own:
// rent, airport and communicate. A purchasable field has at most one owner
// at a time; ownership lasts until the owner leaves the game or the game
// ends, and never survives into the next game.
type Purchasable interface {
	Field

	// BuyCost is the purchase price of the field.
	BuyCost() int64
	// BaseRent is the rent before mortgage and upgrades are applied.
	BaseRent() int64
	// Rent is what a visiting player owes right now. A mortgaged field
	// collects nothing.
	Rent() int64
	// Owner returns the owning player, or nil while unowned.
	Owner() *Player
	// IsMortgaged reports whether the field is mortgaged.
	IsMortgaged() bool
	// MortgageValue is the payout the owner receives for mortgaging,
	// half of the purchase price.
	MortgageValue() int64
	// RedemptionCost is the price of lifting the mortgage.
	RedemptionCost() int64

	setOwner(p *Player)
	setMortgaged(m bool)
}

// ownedField carries the ownership and mortgage state shared by every
// purchasable field.
type ownedField struct {
	name     string
	buyCost  int64
	baseRent int64

	owner     *Player
	mortgaged bool
}

func (f *ownedField) Name() string          { return f.name }
func (f *ownedField) BuyCost() int64        { return f.buyCost }
func (f *ownedField) BaseRent() int64       { return f.baseRent }
func (f *ownedField) Owner() *Player        { return f.owner }
func (f *ownedField) IsMortgaged() bool     { return f.mortgaged }
func (f *ownedField) MortgageValue() int64  { return f.buyCost / 2 }
func (f *ownedField) RedemptionCost() int64 { return f.buyCost / 2 }

func (f *ownedField) setOwner(p *Player)    { f.owner = p }
func (f *ownedField) setMortgaged(m bool)   { f.mortgaged = m }

// Rent is what a visiting player owes right now.
func (f *ownedField) Rent() int64 {
	if f.mortgaged {
		return 0
	}
	return f.baseRent
}

// landOn resolves the shared unowned/self/owned cases for purchasable
// fields. Landing on an unowned field opens a buy/skip decision and blocks
// turn progression until the current player resolves it.
func (f *ownedField) landOn(g *Game, p *Player) {
	switch {
	case f.owner == nil:
		g.setTurnState(TurnBuy, strconv.FormatInt(f.buyCost, 10))
	case f.owner.UserID == p.UserID:
		// No rent to yourself.
	default:
		rent := f.Rent()
		paid, bankrupt := p.Pay(rent)
		// The creditor collects what could actually be paid.
		f.owner.Give(paid)
		if bankrupt {
			g.declareBankrupt(p)
		}
	}
}

// BuyField is a flat pay/receive field, used for start, income tax and
// luxury tax. It cannot be owned.
type BuyField struct {
	name   string
	cost   int64
	reward bool
}

// NewBuyField creates a pay/receive field. With reward set the landing
// player receives cost instead of paying it.
func NewBuyField(name string, cost int64, reward bool) *BuyField {
	return &BuyField{name: name, cost: cost, reward: reward}
}

func (f *BuyField) Kind() FieldKind { return KindBuy }
func (f *BuyField) Name() string    { return f.name }

// Cost is the amount paid or received on landing.
func (f *BuyField) Cost() int64 { return f.cost }

// IsReward reports whether the landing player receives the cost.
func (f *BuyField) IsReward() bool { return f.reward }

func (f *BuyField) onLanded(g *Game, p *Player, depth int) {
	var bankrupt bool
	if f.reward {
		p.Give(f.cost)
	} else {
		_, bankrupt = p.Pay(f.cost)
	}
	p.pushEvent(EventPlayerBuy, fmt.Sprintf("%d %t", f.cost, f.reward))
	if bankrupt {
		g.declareBankrupt(p)
	}
}

// RentField is a purchasable street. It belongs to a color group and can
// later be upgraded with buildings.
type RentField struct {
	ownedField
	color FieldColor

	// Building levels are scaffolded: fields track a level and its price,
	// but no rule raises the level yet.
	level     int
	levelCost int64
}

// NewRentField creates a street field.
func NewRentField(name string, color FieldColor, buyCost, baseRent, levelCost int64) *RentField {
	return &RentField{
		ownedField: ownedField{name: name, buyCost: buyCost, baseRent: baseRent},
		color:      color,
		levelCost:  levelCost,
	}
}

func (f *RentField) Kind() FieldKind { return KindRent }

// Color returns the field's color group.
func (f *RentField) Color() FieldColor { return f.color }

// Level returns the current building level.
func (f *RentField) Level() int { return f.level }

// LevelCost is the price of one building upgrade.
func (f *RentField) LevelCost() int64 { return f.levelCost }

func (f *RentField) onLanded(g *Game, p *Player, depth int) {
	f.landOn(g, p)
}

// AirportField is a purchasable field without a color group. Its rent is
// meant to grow with the number of airports the owner holds; until that
// rule lands it collects the base rent.
type AirportField struct {
	ownedField
}

// NewAirportField creates an airport field.
func NewAirportField(name string, buyCost, baseRent int64) *AirportField {
	return &AirportField{ownedField{name: name, buyCost: buyCost, baseRent: baseRent}}
}

func (f *AirportField) Kind() FieldKind { return KindAirport }

func (f *AirportField) onLanded(g *Game, p *Player, depth int) {
	f.landOn(g, p)
}

// CommunicateField is a purchasable utility. Its rent is meant to depend
// on the visitor's dice roll; until that rule lands it collects the base
// rent.
type CommunicateField struct {
	ownedField
}

// NewCommunicateField creates a utility field.
func NewCommunicateField(name string, buyCost, baseRent int64) *CommunicateField {
	return &CommunicateField{ownedField{name: name, buyCost: buyCost, baseRent: baseRent}}
}

func (f *CommunicateField) Kind() FieldKind { return KindCommunicate }

func (f *CommunicateField) onLanded(g *Game, p *Player, depth int) {
	f.landOn(g, p)
}

// ChanceField triggers a chance card. Card drawing itself is an extension
// point: the field only reports the landing.
type ChanceField struct{}

// NewChanceField creates a chance field.
func NewChanceField() *ChanceField { return &ChanceField{} }

func (f *ChanceField) Kind() FieldKind { return KindChance }
func (f *ChanceField) Name() string    { return "Chance" }

func (f *ChanceField) onLanded(g *Game, p *Player, depth int) {
	p.pushEvent(EventPlayerChance, f.Name())
}

// PrizeField triggers a community treasury card. Like chance, the card
// effect is an extension point.
type PrizeField struct{}

// NewPrizeField creates a treasury field.
func NewPrizeField() *PrizeField { return &PrizeField{} }

func (f *PrizeField) Kind() FieldKind { return KindPrize }
func (f *PrizeField) Name() string    { return "Treasury" }

func (f *PrizeField) onLanded(g *Game, p *Player, depth int) {
	p.pushEvent(EventPlayerChance, f.Name())
}

// TeleportField relocates the landing player to a fixed field and resolves
// the destination's effect.
type TeleportField struct {
	name    string
	toField int
}

// NewTeleportField creates a teleport field that sends players to the
// board index toField.
func NewTeleportField(name string, toField int) *TeleportField {
	return &TeleportField{name: name, toField: toField}
}

func (f *TeleportField) Kind() FieldKind { return KindTeleport }
func (f *TeleportField) Name() string    { return f.name }

// Destination returns the board index players are sent to.
func (f *TeleportField) Destination() int { return f.toField }

func (f *TeleportField) onLanded(g *Game, p *Player, depth int) {
	pos := p.MoveTo(f.toField)
	p.pushEvent(EventPlayerMove, strconv.Itoa(pos))
	g.landOn(p, pos, depth+1)
}

// PrisonField reports the landing. Imprisonment itself (skip-turn or bail)
// is an extension point.
type PrisonField struct{}

// NewPrisonField creates the prison field.
func NewPrisonField() *PrisonField { return &PrisonField{} }

func (f *PrisonField) Kind() FieldKind { return KindPrison }
func (f *PrisonField) Name() string    { return "Prison" }

func (f *PrisonField) onLanded(g *Game, p *Player, depth int) {
	p.pushEvent(EventPlayerPrison, "")
}

// CasinoField reports the landing. The wager itself is an extension point.
type CasinoField struct{}

// NewCasinoField creates the casino field.
func NewCasinoField() *CasinoField { return &CasinoField{} }

func (f *CasinoField) Kind() FieldKind { return KindCasino }
func (f *CasinoField) Name() string    { return "Casino" }

func (f *CasinoField) onLanded(g *Game, p *Player, depth int) {
	p.pushEvent(EventPlayerCasino, "")
}
