// Package logger provides structured logging for the bot.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewLogger creates a new slog Logger writing to stdout with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	return newLogger(os.Stdout, levelStr, jsonOutput)
}

func newLogger(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a config level name to a slog level. Unknown names yield info.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Middleware creates a logging middleware for the Telegram bot.
// It logs one line when an update arrives and one when its handler returns.
func Middleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			startTime := time.Now()

			logEntry := log.With(UpdateAttrs(update)...)
			logEntry.DebugContext(ctx, "Processing update")

			next(ctx, b, update)

			logEntry.InfoContext(ctx, "Finished processing update", "duration", time.Since(startTime))
		}
	}
}

// UpdateAttrs extracts the identifying fields of an update for log lines.
func UpdateAttrs(update *models.Update) []any {
	if update == nil {
		return []any{"update_type", "nil"}
	}

	attrs := []any{"update_id", update.ID}

	switch {
	case update.Message != nil:
		attrs = append(attrs, messageAttrs("message", update.Message)...)
	case update.ChannelPost != nil:
		attrs = append(attrs, messageAttrs("channel_post", update.ChannelPost)...)
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		attrs = append(attrs,
			"update_type", "callback_query",
			"callback_query_id", cq.ID,
			"user_id", cq.From.ID,
			"data", cq.Data,
		)
		switch {
		case cq.Message.Message != nil:
			attrs = append(attrs, "chat_id", cq.Message.Message.Chat.ID, "message_accessible", true)
		case cq.Message.InaccessibleMessage != nil:
			attrs = append(attrs, "chat_id", cq.Message.InaccessibleMessage.Chat.ID, "message_accessible", false)
		}
	case update.MyChatMember != nil:
		attrs = append(attrs,
			"update_type", "my_chat_member",
			"chat_id", update.MyChatMember.Chat.ID,
			"chat_type", update.MyChatMember.Chat.Type,
			"user_id", update.MyChatMember.From.ID,
		)
	default:
		attrs = append(attrs, "update_type", "other")
	}

	return attrs
}

func messageAttrs(kind string, msg *models.Message) []any {
	attrs := []any{
		"update_type", kind,
		"message_id", msg.ID,
		"chat_id", msg.Chat.ID,
		"chat_type", msg.Chat.Type,
		"text_preview", truncateString(msg.Text, 50),
	}
	if msg.From != nil {
		attrs = append(attrs, "user_id", msg.From.ID)
	}
	return attrs
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}
