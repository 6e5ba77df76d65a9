package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/LRGuess/weatherbot/internal/format"
	"github.com/LRGuess/weatherbot/internal/store"
	"github.com/LRGuess/weatherbot/internal/weather"
)

// BotAPI is the slice of the Telegram client the router needs to send
// replies.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Router wires Telegram updates to command handlers.
type Router struct {
	bot     BotAPI
	log     *zap.Logger
	prefs   *store.Store
	weather *weather.Service
	adminID int64 // 0 disables /updatebot
}

// NewRouter creates a new Telegram router.
func NewRouter(bot BotAPI, log *zap.Logger, prefs *store.Store, svc *weather.Service, adminID int64) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		prefs:   prefs,
		weather: svc,
		adminID: adminID,
	}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || !upd.Message.IsCommand() {
		return
	}

	msg := upd.Message
	chatID := msg.Chat.ID
	userID := strconv.FormatInt(msg.From.ID, 10)
	args := msg.CommandArguments()

	switch msg.Command() {
	case "weather":
		r.handleWeather(ctx, chatID, userID, args)
	case "forecast":
		r.handleForecast(ctx, chatID, userID, args)
	case "forecast16":
		r.handleForecast16(ctx, chatID, userID, args)
	case "airquality":
		r.handleAirQuality(ctx, chatID, userID, args)
	case "wind":
		r.handleWind(ctx, chatID, userID, args)
	case "humidity":
		r.handleHumidity(ctx, chatID, userID, args)
	case "suntimes":
		r.handleSunTimes(ctx, chatID, userID, args)
	case "alerts":
		r.handleAlerts(ctx, chatID, userID, args)

	case "setlocation":
		r.handleSetLocation(chatID, userID, args)
	case "setunit":
		r.handleSetUnit(chatID, userID, args)
	case "format":
		r.handleSetFormat(chatID, userID, args)
	case "dailyupdate":
		r.handleDailyUpdate(chatID, userID, args)
	case "disableupdates":
		r.handleDisableUpdates(chatID, userID)

	case "updatebot":
		r.handleUpdateBot(chatID, msg.From.ID)

	case "start":
		r.sendText(chatID, startText)
	case "help":
		r.sendText(chatID, helpText)
	case "about":
		r.sendText(chatID, aboutText)
	case "bugreport":
		r.sendText(chatID, bugReportText)

	default:
		r.sendText(chatID, "Unknown command. See /help for the full list.")
	}
}

// reply sends a rendered reply to the given chat.
func (r *Router) reply(chatID int64, rep format.Reply) {
	msg := tgbotapi.NewMessage(chatID, rep.Text)
	msg.ParseMode = rep.ParseMode
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendText(chatID int64, text string) {
	r.reply(chatID, format.Reply{Text: text})
}

// SendDirect delivers a rendered message to a user by their stored ID.
// This makes Router satisfy notifier.Sender.
func (r *Router) SendDirect(userID string, rep format.Reply) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("bad user id %q: %w", userID, err)
	}
	msg := tgbotapi.NewMessage(chatID, rep.Text)
	msg.ParseMode = rep.ParseMode
	_, err = r.bot.Send(msg)
	return err
}
