package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h startHandler) handle(ctx context.Context, c Client, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil {
		log.WarnContext(ctx, "Start handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID, "user_id", senderID(update.Message))

	if err := h.deps.Menu.SendWelcome(ctx, c, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome menu", "error", err, "chat_id", chatID)
	} else {
		log.DebugContext(ctx, "Successfully sent welcome menu", "chat_id", chatID)
	}
}

func senderID(msg *models.Message) int64 {
	if msg.From == nil {
		return 0
	}
	return msg.From.ID
}
