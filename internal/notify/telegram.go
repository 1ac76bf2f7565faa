package notify

import (
	"encoding/json"
	"fmt"

	"shareit/internal/config"
	"shareit/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender — минимальный интерфейс отправки сообщений, чтобы подменять бота в тестах.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier шлет уведомления о событиях сервиса в служебный чат.
type TelegramNotifier struct {
	bot    Sender
	chatID int64
	logger *zerolog.Logger
}

func NewTelegramNotifier(cfg config.NotifyConfig, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = cfg.Debug

	logger.Info().Str("bot_username", bot.Self.UserName).Msg("Telegram notifier connected")

	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID, logger: logger}, nil
}

// NewWithSender используется в тестах и для нестандартных транспортов.
func NewWithSender(sender Sender, chatID int64, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: sender, chatID: chatID, logger: logger}
}

// Register подписывает нотификатор на события шины.
func (n *TelegramNotifier) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventBookingCreated, n.handleBookingEvent)
	bus.Subscribe(events.EventBookingApproved, n.handleBookingEvent)
	bus.Subscribe(events.EventBookingRejected, n.handleBookingEvent)
	bus.Subscribe(events.EventCommentAdded, n.handleCommentEvent)
}

func (n *TelegramNotifier) handleBookingEvent(event *events.Event) error {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to decode booking event")
		return err
	}

	var text string
	switch event.Type {
	case events.EventBookingCreated:
		text = fmt.Sprintf("📅 Новая заявка #%d: %s забронировал «%s»\n%s — %s",
			payload.BookingID, payload.BookerName, payload.ItemName,
			payload.Start.Format("02.01.2006 15:04"), payload.End.Format("02.01.2006 15:04"))
	case events.EventBookingApproved:
		text = fmt.Sprintf("✅ Заявка #%d на «%s» подтверждена", payload.BookingID, payload.ItemName)
	case events.EventBookingRejected:
		text = fmt.Sprintf("❌ Заявка #%d на «%s» отклонена", payload.BookingID, payload.ItemName)
	default:
		return nil
	}

	return n.send(text)
}

func (n *TelegramNotifier) handleCommentEvent(event *events.Event) error {
	var payload events.CommentEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to decode comment event")
		return err
	}

	text := fmt.Sprintf("💬 %s оставил отзыв о «%s»:\n%s",
		payload.AuthorName, payload.ItemName, payload.Text)
	return n.send(text)
}

func (n *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("failed to send telegram notification")
		return err
	}
	return nil
}
