package notificator

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/gizaresult/resultdesk/pkg/logger"
)

// TelegramNotificator posts HTML messages to the admin chat.
type TelegramNotificator struct {
	logger *logger.Logger
	bot    *bot.Bot

	ChatID string
}

// NewTelegramNotificator builds the channel. Extra options are passed to the
// bot client, e.g. bot.WithServerURL in tests.
func NewTelegramNotificator(logger *logger.Logger, token, chatID string, opts ...bot.Option) (*TelegramNotificator, error) {
	opts = append([]bot.Option{bot.WithSkipGetMe()}, opts...)
	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotificator{logger: logger, bot: b, ChatID: chatID}, nil
}

func (t *TelegramNotificator) SendNotification(ctx context.Context, message string) error {
	params := &bot.SendMessageParams{
		ChatID:    t.ChatID,
		Text:      message,
		ParseMode: tgModels.ParseModeHTML,
	}
	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	t.logger.Debug("Telegram notification sent", "chat_id", t.ChatID)
	return nil
}
