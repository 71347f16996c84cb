package tasks

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// newChatReportTask creates the task that sends the admin the list of chats
// a broadcast would currently reach.
func newChatReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "chat_report")

	return func(ctx context.Context) error {
		adminID := deps.Config.Telegram.AdminID
		if adminID == 0 {
			log.WarnContext(ctx, "Skipping chat report, no admin configured")
			return nil
		}

		startTime := time.Now()
		chats := deps.Registry.Load()
		text := formatChatReport(deps.Config.Messages.ChatReportHeader, deps.Config.Messages.ChatReportEmpty, chats.IDs(), chats)

		_, err := deps.Sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    adminID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send chat report", "error", err, "admin_id", adminID)
			return fmt.Errorf("send chat report: %w", err)
		}

		log.InfoContext(ctx, "Chat report sent", "chats", len(chats), "duration", time.Since(startTime))
		return nil
	}
}

func formatChatReport(header, empty string, ids []int64, names map[int64]string) string {
	if len(ids) == 0 {
		return empty
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, header, len(ids))
	for _, id := range ids {
		fmt.Fprintf(&sb, "• %s (<code>%d</code>)\n", html.EscapeString(names[id]), id)
	}
	return strings.TrimRight(sb.String(), "\n")
}
