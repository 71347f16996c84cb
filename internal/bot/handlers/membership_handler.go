package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewMembershipHandler returns the default handler. It registers every
// group, supergroup or channel the bot receives an update from.
func NewMembershipHandler(deps HandlerDeps) bot.HandlerFunc {
	return membershipHandler{deps}.Handle
}

type membershipHandler struct {
	deps HandlerDeps
}

func (h membershipHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	h.handle(ctx, update)
}

func (h membershipHandler) handle(ctx context.Context, update *models.Update) {
	log := h.deps.Logger.With("handler", "membership")

	chat, source := recordableChat(update)
	if chat == nil {
		log.DebugContext(ctx, "Update carries no chat to record", "update_id", update.ID)
		return
	}

	if !isBroadcastTarget(chat.Type) {
		return
	}

	if h.deps.Registry.Record(chat.ID, chat.Title) {
		log.InfoContext(ctx, "Recorded chat", "chat_id", chat.ID, "chat_type", chat.Type, "source", source)
	}
}

// recordableChat returns the chat an update originates from, if it is one
// that proves the bot can post there.
func recordableChat(update *models.Update) (*models.Chat, string) {
	switch {
	case update.Message != nil:
		return &update.Message.Chat, "message"
	case update.ChannelPost != nil:
		return &update.ChannelPost.Chat, "channel_post"
	case update.MyChatMember != nil:
		switch update.MyChatMember.NewChatMember.Type {
		case models.ChatMemberTypeMember, models.ChatMemberTypeAdministrator:
			return &update.MyChatMember.Chat, "my_chat_member"
		}
	}
	return nil, ""
}

func isBroadcastTarget(t models.ChatType) bool {
	switch t {
	case models.ChatTypeGroup, models.ChatTypeSupergroup, models.ChatTypeChannel:
		return true
	default:
		return false
	}
}
