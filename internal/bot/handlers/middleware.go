// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"
	"runtime/debug"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that lets only the configured admin through.
// Everyone else is ignored without a reply. An admin id of zero blocks all users.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			log := deps.Logger.With("middleware", "AdminOnly")

			if update.Message == nil || update.Message.From == nil {
				log.DebugContext(ctx, "Ignoring update without sender", "update_id", update.ID)
				return
			}

			adminID := deps.Config.Telegram.AdminID
			userID := update.Message.From.ID
			if adminID == 0 || userID != adminID {
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", update.Message.Chat.ID)
				return
			}

			next(ctx, bot, update)
		}
	}
}

// Recover creates a middleware that logs and swallows panics raised while
// handling an update, so one bad update cannot stop the receive loop.
func Recover(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					deps.Logger.ErrorContext(ctx, "Recovered from panic in update handler",
						"panic", r,
						"update_id", update.ID,
						"stack", string(debug.Stack()),
					)
				}
			}()
			next(ctx, bot, update)
		}
	}
}
