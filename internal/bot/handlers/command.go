package handlers

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// CommandMatch matches messages that start with /name or /name@username.
// An empty username accepts any mention, so the bot still routes commands
// when its own username could not be fetched.
func CommandMatch(name, username string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update == nil || update.Message == nil {
			return false
		}
		command, mention, ok := leadingCommand(update.Message)
		if !ok || command != name {
			return false
		}
		return mention == "" || username == "" || strings.EqualFold(mention, username)
	}
}

// leadingCommand splits the bot_command entity at offset 0 into the command
// name and the optional @mention.
func leadingCommand(msg *models.Message) (command, mention string, ok bool) {
	for _, entity := range msg.Entities {
		if entity.Type != models.MessageEntityTypeBotCommand || entity.Offset != 0 {
			continue
		}
		// Command entities are ASCII, so UTF-16 lengths equal byte lengths.
		if entity.Length < 2 || entity.Length > len(msg.Text) {
			return "", "", false
		}
		command = msg.Text[1:entity.Length]
		command, mention, _ = strings.Cut(command, "@")
		return command, mention, true
	}
	return "", "", false
}
