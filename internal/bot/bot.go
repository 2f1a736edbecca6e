// Package bot provides the Telegram bot initialization and handler
// registration.
package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"telegram-monopoly-bot/internal/config"
	"telegram-monopoly-bot/internal/handler"
	"telegram-monopoly-bot/internal/monopoly"
	"telegram-monopoly-bot/internal/pkg/lock"
	"telegram-monopoly-bot/internal/service"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.Config
	sessions *monopoly.SessionManager
	roomLock *lock.RoomLock

	sessionHandler *handler.SessionHandler
	turnHandler    *handler.TurnHandler
	statsHandler   *handler.StatsHandler
}

// Dependencies holds everything the bot handlers need.
type Dependencies struct {
	Config   *config.Config
	Sessions *monopoly.SessionManager
	Stats    *service.StatsService
	RoomLock *lock.RoomLock
}

// New creates a new Bot instance with the given dependencies and attaches
// the event sink to the session manager so every engine event reaches the
// chat.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:      teleBot,
		cfg:      deps.Config,
		sessions: deps.Sessions,
		roomLock: deps.RoomLock,
	}

	b.sessionHandler = handler.NewSessionHandler(deps.Config, deps.Sessions, deps.RoomLock)
	b.turnHandler = handler.NewTurnHandler(deps.Sessions, deps.RoomLock)
	b.statsHandler = handler.NewStatsHandler(deps.Stats)

	deps.Sessions.SetHandler(handler.NewEventSink(teleBot, deps.Sessions, deps.Stats))

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

func (b *Bot) registerMiddleware() {
	b.bot.Use(RecoveryMiddleware())
	b.bot.Use(WhitelistMiddleware(b.cfg))
	b.bot.Use(LoggingMiddleware())
}

func (b *Bot) registerHandlers() {
	// Room lifecycle
	b.bot.Handle("/game", b.sessionHandler.HandleNewGame)
	b.bot.Handle("/join", b.sessionHandler.HandleJoin)
	b.bot.Handle("/start", b.sessionHandler.HandleStartGame)
	b.bot.Handle("/leave", b.sessionHandler.HandleLeave)
	b.bot.Handle("/stop", b.sessionHandler.HandleStop)

	// Turn actions
	b.bot.Handle("/roll", b.turnHandler.HandleRoll)
	b.bot.Handle("/board", b.turnHandler.HandleBoard)

	// Statistics
	b.bot.Handle("/stats", b.statsHandler.HandleStats)
	b.bot.Handle("/top", b.statsHandler.HandleTop)

	// Inline keyboard buttons
	b.bot.Handle(tele.OnCallback, b.handleCallback)
}

// handleCallback routes inline button presses to their handlers.
func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 prefixes callback data with \f.
	data := strings.TrimPrefix(callback.Data, "\f")
	if i := strings.IndexByte(data, '|'); i >= 0 {
		data = data[:i]
	}

	log.Debug().Str("data", data).Msg("callback received")

	switch data {
	case handler.CallbackJoin:
		return b.sessionHandler.HandleJoin(c)
	case handler.CallbackStartGame:
		return b.sessionHandler.HandleStartGame(c)
	case handler.CallbackRoll:
		return b.turnHandler.HandleRoll(c)
	case handler.CallbackBuy:
		return b.turnHandler.HandleBuy(c)
	case handler.CallbackSkip:
		return b.turnHandler.HandleSkip(c)
	default:
		return c.Respond()
	}
}

// Start starts the bot polling. It blocks until Stop is called.
func (b *Bot) Start() {
	log.Info().Msg("starting bot")
	b.bot.Start()
}

// Stop stops the bot gracefully.
func (b *Bot) Stop() {
	log.Info().Msg("stopping bot")
	b.bot.Stop()
}

// GetBot returns the underlying telebot instance.
func (b *Bot) GetBot() *tele.Bot {
	return b.bot
}
