package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/railuxbot/internal/broadcast"
)

// replyTimeout bounds the report sent after a broadcast, which may outlive
// the update's context during shutdown.
const replyTimeout = 10 * time.Second

// NewRekHandler returns the admin handler that broadcasts a text to every
// registered chat. It must be wrapped with AdminOnly.
func NewRekHandler(deps HandlerDeps) bot.HandlerFunc {
	return rekHandler{deps}.Handle
}

type rekHandler struct {
	deps HandlerDeps
}

func (h rekHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h rekHandler) handle(ctx context.Context, c Client, update *models.Update) {
	log := h.deps.Logger.With("handler", "rek")

	if update.Message == nil {
		log.WarnContext(ctx, "Broadcast handler received update with nil message", "update_id", update.ID)
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID
	msgs := h.deps.Config.Messages

	payload := broadcast.ExtractPayload(msg.Text, h.deps.Config.Broadcast.Command)
	if payload == "" {
		log.InfoContext(ctx, "Broadcast command without text", "chat_id", chatID)
		h.reply(ctx, c, chatID, msgs.BroadcastUsage)
		return
	}

	log.InfoContext(ctx, "Handling broadcast command", "chat_id", chatID, "user_id", senderID(msg))
	h.reply(ctx, c, chatID, h.run(ctx, c, payload))
}

// run performs the broadcast and returns the report for the admin. Errors and
// panics are turned into the generic failure text.
func (h rekHandler) run(ctx context.Context, c Client, payload string) (report string) {
	log := h.deps.Logger.With("handler", "rek")
	msgs := h.deps.Config.Messages

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Broadcast panicked", "panic", r)
			report = fmt.Sprintf(msgs.BroadcastError, html.EscapeString(fmt.Sprint(r)))
		}
	}()

	result, err := h.deps.Broadcaster.Broadcast(ctx, c, payload)
	switch {
	case errors.Is(err, broadcast.ErrNoDestinations):
		return msgs.BroadcastNoChats
	case err != nil:
		log.ErrorContext(ctx, "Broadcast failed", "error", err)
		return fmt.Sprintf(msgs.BroadcastError, html.EscapeString(err.Error()))
	case len(result.Delivered) == 0:
		return msgs.BroadcastNoneSent
	}

	return formatBroadcastReport(msgs.BroadcastDone, payload, result.Delivered)
}

// formatBroadcastReport fills the report template with the escaped payload
// and a bullet list of chat names.
func formatBroadcastReport(template, payload string, names []string) string {
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "• " + html.EscapeString(name)
	}
	return fmt.Sprintf(template, html.EscapeString(payload), strings.Join(lines, "\n"))
}

func (h rekHandler) reply(ctx context.Context, c Client, chatID int64, text string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), replyTimeout)
	defer cancel()

	_, err := c.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send broadcast reply", "handler", "rek", "error", err, "chat_id", chatID)
	}
}
