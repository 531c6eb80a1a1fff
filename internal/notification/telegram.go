package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bistro-boss/internal/models"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender alerts the admin chat about every confirmed payment
type TelegramSender struct {
	bot    botSender
	chatID int64
}

func NewTelegramSender(token string, chatID int64) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramSender{bot: bot, chatID: chatID}, nil
}

func (s *TelegramSender) Channel() string { return models.ChannelTelegram }

func (s *TelegramSender) Send(_ context.Context, msg *models.PaymentConfirmation) error {
	if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, renderAdminAlert(msg))); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
