package monopoly

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// TurnState is the sub-phase of the current turn. It gates whether the
// turn may advance to the next player.
type TurnState string

const (
	// TurnNext means the turn may advance normally.
	TurnNext TurnState = "next"
	// TurnBuy means the current player must buy or skip the field they
	// landed on before the turn can advance.
	TurnBuy TurnState = "buy"
	// TurnContract is reserved for the trade mechanic. No transition
	// reaches it yet.
	TurnContract TurnState = "contract"
)

// DefaultMinPlayers is the fewest players a game can start with.
const DefaultMinPlayers = 2

// maxTeleportDepth caps teleport chains: a teleport destination never
// triggers another teleport, which rules out infinite loops even on a
// board where teleports point at each other.
const maxTeleportDepth = 1

// GameConfig tunes a new game. The zero value (or nil) selects the
// classic board, a time-seeded dice source and the default limits.
type GameConfig struct {
	Board        BoardFactory
	Rand         *rand.Rand
	MinPlayers   int
	StartBalance int64
}

// Game is the per-room turn engine. It owns the player list, the current
// player cursor, this game's private board copy and the turn sub-state.
// Operations on a single Game must be serialized by the caller; across
// different games full parallelism is safe.
type Game struct {
	RoomID int64

	// Owner is the player who created the room, always the first joined.
	Owner *Player

	// Players in turn order. Shuffled by Start, mutated by join/leave.
	Players []*Player

	// Bankrupts lists eliminated players in elimination order.
	Bankrupts []*Player

	// Winner is set when the game ends with a surviving player.
	Winner *Player

	TurnState    TurnState
	Started      bool
	Open         bool
	RoundCounter int
	LastDice     Dice

	GameStart time.Time
	TurnStart time.Time

	events        EventHandler
	board         []Field
	boardFactory  BoardFactory
	rng           *rand.Rand
	minPlayers    int
	startBalance  int64
	currentPlayer int
}

// NewGame creates a lobby bound to roomID with user as its owner and
// first player. cfg may be nil.
func NewGame(events EventHandler, roomID int64, user BaseUser, cfg *GameConfig) *Game {
	boardFactory := BoardFactory(ClassicBoard)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	minPlayers := DefaultMinPlayers
	startBalance := int64(DefaultStartBalance)

	if cfg != nil {
		if cfg.Board != nil {
			boardFactory = cfg.Board
		}
		if cfg.Rand != nil {
			rng = cfg.Rand
		}
		if cfg.MinPlayers > 0 {
			minPlayers = cfg.MinPlayers
		}
		if cfg.StartBalance > 0 {
			startBalance = cfg.StartBalance
		}
	}

	if events == nil {
		events = LogHandler{}
	}

	g := &Game{
		RoomID:       roomID,
		TurnState:    TurnNext,
		Open:         true,
		GameStart:    time.Now(),
		TurnStart:    time.Now(),
		events:       events,
		board:        boardFactory(),
		boardFactory: boardFactory,
		rng:          rng,
		minPlayers:   minPlayers,
		startBalance: startBalance,
	}

	owner := newPlayer(g, user)
	g.Owner = owner
	g.Players = append(g.Players, owner)
	return g
}

// Board returns this game's board. The slice must be treated as
// read-only by callers.
func (g *Game) Board() []Field {
	return g.board
}

// CurrentPlayer returns the player whose turn it is, or nil when the
// game has no players.
func (g *Game) CurrentPlayer() *Player {
	if len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.currentPlayer%len(g.Players)]
}

// GetPlayer finds a player by user ID, or nil when the user is not in
// this game.
func (g *Game) GetPlayer(userID int64) *Player {
	for _, p := range g.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// RollDice rolls this game's dice.
func (g *Game) RollDice() Dice {
	return RollDice(g.rng)
}

// Start begins the game: shuffles the turn order, resets every player and
// instantiates a fresh board so no ownership leaks in from a previous
// game. The lobby closes for new players.
func (g *Game) Start() error {
	if len(g.Players) < g.minPlayers {
		return ErrNotEnoughPlayers
	}

	log.Info().Int64("room_id", g.RoomID).Int("players", len(g.Players)).Msg("starting new game")

	g.rng.Shuffle(len(g.Players), func(i, j int) {
		g.Players[i], g.Players[j] = g.Players[j], g.Players[i]
	})
	for _, p := range g.Players {
		p.Balance = g.startBalance
		p.Position = 0
		p.Fields = nil
	}

	g.Winner = nil
	g.Bankrupts = nil
	g.board = g.boardFactory()
	g.Started = true
	g.Open = false
	g.TurnState = TurnNext
	g.RoundCounter = 0
	g.currentPlayer = 0
	now := time.Now()
	g.GameStart = now
	g.TurnStart = now

	g.push(g.CurrentPlayer(), EventGameStart, "")
	return nil
}

// ProcessTurn moves the current player by the dice total, resolves the
// destination field's effect and, unless the field demanded a decision or
// eliminated the player, advances to the next turn.
func (g *Game) ProcessTurn(d Dice) error {
	if !g.Started {
		return ErrGameNotStarted
	}
	if g.TurnState == TurnBuy {
		return ErrPendingPurchase
	}

	p := g.CurrentPlayer()
	g.LastDice = d
	p.pushEvent(EventPlayerDice, d.String())

	pos := p.Move(d.Total())
	p.pushEvent(EventPlayerMove, strconv.Itoa(pos))

	g.landOn(p, pos, 0)

	// The landing effect may have removed the player or ended the game;
	// only auto-advance when the turn still belongs to them and nothing
	// is pending.
	if g.Started && g.TurnState == TurnNext && g.CurrentPlayer() == p {
		g.forceNextTurn()
	}
	return nil
}

// NextTurn passes the turn to the next player. It is rejected while a
// purchase decision is outstanding.
func (g *Game) NextTurn() error {
	if !g.Started {
		return ErrGameNotStarted
	}
	if g.TurnState == TurnBuy {
		return ErrPendingPurchase
	}
	g.forceNextTurn()
	return nil
}

// forceNextTurn advances the current player cursor unconditionally,
// resetting the turn sub-state and the turn clock.
func (g *Game) forceNextTurn() {
	if len(g.Players) == 0 {
		return
	}
	g.TurnState = TurnNext
	g.TurnStart = time.Now()
	g.currentPlayer = (g.currentPlayer + 1) % len(g.Players)
	if g.currentPlayer == 0 {
		g.RoundCounter++
	}
	g.push(g.CurrentPlayer(), EventGameNext, "")
}

// AddPlayer adds a new player for user. It fails when the lobby is
// closed or the user is already in this game.
func (g *Game) AddPlayer(user BaseUser) (*Player, error) {
	if !g.Open {
		return nil, ErrLobbyClosed
	}
	if g.GetPlayer(user.ID) != nil {
		return nil, ErrAlreadyJoined
	}

	log.Info().Int64("room_id", g.RoomID).Int64("user_id", user.ID).Msg("player joins game")

	p := newPlayer(g, user)
	g.Players = append(g.Players, p)
	g.push(p, EventGameJoin, "")
	return p, nil
}

// RemovePlayer removes a player who leaves voluntarily. A solvent leaver
// is recorded with a "win" tag, an exhausted one as a bankrupt. When only
// one player remains afterwards, they win and the game ends.
func (g *Game) RemovePlayer(userID int64) error {
	p := g.GetPlayer(userID)
	if p == nil {
		return ErrNotInGame
	}
	g.removePlayer(p, p.Balance > 0)
	return nil
}

// declareBankrupt eliminates a player whose balance was exhausted by a
// payment.
func (g *Game) declareBankrupt(p *Player) {
	g.removePlayer(p, false)
}

func (g *Game) removePlayer(p *Player, solvent bool) {
	log.Info().Int64("room_id", g.RoomID).Int64("user_id", p.UserID).Bool("solvent", solvent).Msg("player leaves game")

	// Hand the turn over first so the cursor never points at the leaver.
	if g.Started && len(g.Players) > 1 && g.CurrentPlayer() == p {
		g.forceNextTurn()
	}

	idx := -1
	for i, other := range g.Players {
		if other == p {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	tag := "win"
	if solvent {
		// A voluntary leaver with money left is a win candidate, unless
		// they were the last player standing.
		if g.Started && len(g.Players) > 1 {
			g.Winner = p
		}
	} else {
		tag = "lose"
		g.Bankrupts = append(g.Bankrupts, p)
	}

	g.Players = append(g.Players[:idx], g.Players[idx+1:]...)
	if idx < g.currentPlayer {
		g.currentPlayer--
	}
	if len(g.Players) > 0 {
		g.currentPlayer %= len(g.Players)
	} else {
		g.currentPlayer = 0
	}

	p.releaseFields()
	g.push(p, EventGameLeave, tag)

	if g.Started && len(g.Players) <= 1 {
		if len(g.Players) == 1 {
			g.Winner = g.Players[0]
		}
		g.End()
	}
}

// End finishes the current game: players are cleared and the game object
// is expected to be discarded by its session manager.
func (g *Game) End() {
	log.Info().Int64("room_id", g.RoomID).Msg("game over")
	g.Players = nil
	g.Started = false
	g.currentPlayer = 0
	g.push(g.Winner, EventGameEnd, "")
}

// landOn resolves the landing effect of the field at index. depth grows
// along teleport chains; once a teleport already fired, a teleport
// destination resolves as plain movement.
func (g *Game) landOn(p *Player, index int, depth int) {
	f := g.board[index]
	if f.Kind() == KindTeleport && depth >= maxTeleportDepth {
		return
	}
	f.onLanded(g, p, depth)
}

// buyField resolves the pending purchase decision by buying the field the
// player stands on.
func (g *Game) buyField(p *Player) error {
	if g.TurnState != TurnBuy {
		return ErrNoPendingPurchase
	}
	if g.CurrentPlayer() != p {
		return ErrNotYourTurn
	}

	f, ok := g.board[p.Position].(Purchasable)
	if !ok {
		return ErrNotPurchasable
	}
	if f.Owner() != nil {
		return ErrFieldOwned
	}

	_, bankrupt := p.Pay(f.BuyCost())
	p.takeOwnership(f)
	p.pushEvent(EventPlayerBuy, fmt.Sprintf("%s %d", f.Name(), f.BuyCost()))

	if bankrupt {
		// Removal releases the freshly bought field again.
		g.TurnState = TurnNext
		g.declareBankrupt(p)
		return nil
	}

	g.forceNextTurn()
	return nil
}

// skipField resolves the pending purchase decision by declining the buy.
func (g *Game) skipField(p *Player) error {
	if g.TurnState != TurnBuy {
		return ErrNoPendingPurchase
	}
	if g.CurrentPlayer() != p {
		return ErrNotYourTurn
	}
	g.TurnState = TurnNext
	g.forceNextTurn()
	return nil
}

// setTurnState switches the turn sub-state and reports it.
func (g *Game) setTurnState(state TurnState, data string) {
	g.TurnState = state
	g.push(g.CurrentPlayer(), EventGameState, string(state)+" "+data)
}

// push hands an event to the sink. A panicking sink must not be able to
// corrupt a completed state transition, so failures stop here.
func (g *Game) push(p *Player, t EventType, data string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Int64("room_id", g.RoomID).
				Str("type", string(t)).
				Interface("panic", r).
				Msg("event sink panicked")
		}
	}()
	g.events.Push(Event{
		RoomID: g.RoomID,
		Player: p,
		Type:   t,
		Data:   data,
		Game:   g,
	})
}
