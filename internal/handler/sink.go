package handler

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-monopoly-bot/internal/monopoly"
	"telegram-monopoly-bot/internal/service"
)

// EventSink renders engine events into chat messages. Lines accumulate in
// a per-room journal and are flushed as a single message at turn
// boundaries, so one dice roll produces one chat message instead of five.
type EventSink struct {
	bot      *tele.Bot
	sessions *monopoly.SessionManager
	stats    *service.StatsService

	mu      sync.Mutex
	journal map[int64][]string
}

// NewEventSink creates a sink bound to the bot. stats may be nil when no
// database is configured.
func NewEventSink(bot *tele.Bot, sessions *monopoly.SessionManager, stats *service.StatsService) *EventSink {
	return &EventSink{
		bot:      bot,
		sessions: sessions,
		stats:    stats,
		journal:  make(map[int64][]string),
	}
}

// Push implements monopoly.EventHandler. It is called synchronously from
// inside engine operations, so everything slow or re-entrant (stats
// writes, session cleanup) is pushed off to goroutines.
func (s *EventSink) Push(e monopoly.Event) {
	switch e.Type {
	case monopoly.EventGameStart:
		s.reset(e.RoomID)
		s.send(e.RoomID, NewGameMessage(e.Game), TurnMarkup())

	case monopoly.EventGameNext:
		s.add(e.RoomID, eventLine(e))
		s.flush(e.RoomID, TurnMarkup())

	case monopoly.EventGameState:
		if strings.HasPrefix(e.Data, string(monopoly.TurnBuy)) {
			s.add(e.RoomID, buyPrompt(e))
			s.flush(e.RoomID, BuyMarkup())
		}

	case monopoly.EventGameEnd:
		s.add(e.RoomID, EndGameMessage(e.Game))
		s.flush(e.RoomID, nil)
		s.finishGame(e.Game)

	case monopoly.EventSessionStart, monopoly.EventSessionEnd,
		monopoly.EventSessionJoin, monopoly.EventSessionLeave:
		// Session events are answered directly by the command handlers.

	default:
		s.add(e.RoomID, eventLine(e))
	}
}

// finishGame persists the outcome and drops the room's session. Cleanup
// runs in a goroutine because Push may be called while the session
// manager's own lock is held.
func (s *EventSink) finishGame(g *monopoly.Game) {
	if g == nil {
		return
	}
	go func() {
		if s.stats != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.stats.RecordGame(ctx, g); err != nil {
				log.Error().Err(err).Int64("room_id", g.RoomID).Msg("failed to record game result")
			}
		}
		if s.sessions != nil {
			if err := s.sessions.Remove(g.RoomID); err != nil {
				log.Debug().Err(err).Int64("room_id", g.RoomID).Msg("session already removed")
			}
		}
	}()
}

func (s *EventSink) add(roomID int64, line string) {
	if line == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal[roomID] = append(s.journal[roomID], line)
}

func (s *EventSink) reset(roomID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.journal, roomID)
}

// flush sends the buffered journal as one message and clears the buffer.
func (s *EventSink) flush(roomID int64, markup *tele.ReplyMarkup) {
	s.mu.Lock()
	lines := s.journal[roomID]
	delete(s.journal, roomID)
	s.mu.Unlock()

	if len(lines) == 0 {
		return
	}
	s.send(roomID, strings.Join(lines, "\n"), markup)
}

func (s *EventSink) send(roomID int64, text string, markup *tele.ReplyMarkup) {
	if s.bot == nil || text == "" {
		return
	}
	opts := []interface{}{tele.ModeHTML}
	if markup != nil {
		opts = append(opts, markup)
	}
	if _, err := s.bot.Send(tele.ChatID(roomID), text, opts...); err != nil {
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to send game journal")
	}
}
