package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return helpHandler{deps}.Handle
}

// helpHandler processes the /help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h helpHandler) handle(ctx context.Context, c Client, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	if update.Message == nil {
		log.WarnContext(ctx, "Help handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /help command", "chat_id", chatID, "user_id", senderID(update.Message))

	if err := h.deps.Menu.SendHelp(ctx, c, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to send help message", "error", err, "chat_id", chatID)
	} else {
		log.DebugContext(ctx, "Successfully sent help message", "chat_id", chatID)
	}
}
