package monopoly

import (
	"math/rand"
)

// recordingHandler collects every emitted event so tests can assert on
// emission order and payloads.
type recordingHandler struct {
	events []Event
}

func (h *recordingHandler) Push(e Event) {
	h.events = append(h.events, e)
}

func (h *recordingHandler) types() []EventType {
	out := make([]EventType, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

func (h *recordingHandler) count(t EventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// panicHandler blows up on every push, to prove sink failures stay
// contained.
type panicHandler struct{}

func (panicHandler) Push(Event) {
	panic("sink is broken")
}

// testBoard is a small deterministic board:
//
//	0 start (reward 1000)
//	1 rent 200/60
//	2 treasury
//	3 rent 200/60
//	4 tax 100
//	5 rent 200/60
//	6 teleport -> 1
//	7 chance
func testBoard() []Field {
	return []Field{
		NewBuyField("Start", 1000, true),
		NewRentField("One", ColorBrown, 200, 60, 100),
		NewPrizeField(),
		NewRentField("Three", ColorBrown, 200, 60, 100),
		NewBuyField("Tax", 100, false),
		NewRentField("Five", ColorBrown, 200, 60, 100),
		NewTeleportField("Warp", 1),
		NewChanceField(),
	}
}

func testGameConfig(seed int64) *GameConfig {
	return &GameConfig{
		Board: testBoard,
		Rand:  rand.New(rand.NewSource(seed)),
	}
}

// newStartedGame builds a started two-player game on the test board with
// a recording sink attached.
func newStartedGame(seed int64) (*Game, *recordingHandler) {
	sink := &recordingHandler{}
	game := NewGame(sink, 100, BaseUser{ID: 1, Name: "alice"}, testGameConfig(seed))
	if _, err := game.AddPlayer(BaseUser{ID: 2, Name: "bob"}); err != nil {
		panic(err)
	}
	if err := game.Start(); err != nil {
		panic(err)
	}
	return game, sink
}
