package notificator

import (
	"context"
	"runtime/debug"

	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

// Notificator fans admin notifications out to email then Telegram. A nil
// channel is skipped.
type Notificator struct {
	logger *logger.Logger

	TelegramNotificator *TelegramNotificator
	EmailNotificator    *EmailNotificator
}

var _ models.NotificationService = (*Notificator)(nil)

func NewNotificator(logger *logger.Logger, telNotif *TelegramNotificator, emailNotif *EmailNotificator) *Notificator {
	return &Notificator{logger: logger, TelegramNotificator: telNotif, EmailNotificator: emailNotif}
}

// safeCall runs a function with panic recovery (synchronous, no goroutine spawning)
func (n *Notificator) safeCall(fn func() error, context string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	if err := fn(); err != nil {
		n.logger.Error("Notification failed", "context", context, "error", err)
	}
}

func (n *Notificator) SendNotification(ctx context.Context, notification *models.Notification) {
	msg, ok := render(notification)
	if !ok {
		n.logger.Warn("Dropping notification that cannot be rendered", "notification", notification)
		return
	}

	if n.EmailNotificator != nil {
		n.safeCall(func() error { return n.EmailNotificator.Notify(ctx, msg.Subject, msg.Text) }, "emailNotification")
	}
	if n.TelegramNotificator != nil {
		n.safeCall(func() error { return n.TelegramNotificator.SendNotification(ctx, msg.HTML) }, "telegramNotification")
	}
}
