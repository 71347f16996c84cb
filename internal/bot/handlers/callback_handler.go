package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/railuxbot/internal/menu"
)

// NewCallbackHandler returns a handler for inline button presses.
func NewCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handle(ctx, b, update)
}

func (h callbackHandler) handle(ctx context.Context, c Client, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	cq := update.CallbackQuery
	if cq == nil {
		log.WarnContext(ctx, "Callback handler received update without callback query", "update_id", update.ID)
		return
	}

	// Every press is acknowledged first so the client stops its spinner.
	if _, err := c.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
		log.ErrorContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", cq.ID)
	}

	origin := callbackOrigin(cq)
	userID := cq.From.ID

	var err error
	switch cq.Data {
	case menu.CallbackHelp:
		err = h.deps.Menu.ShowHelp(ctx, c, origin, userID)
	case menu.CallbackMainMenu:
		err = h.deps.Menu.ShowMainMenu(ctx, c, origin, userID)
	default:
		log.DebugContext(ctx, "Ignoring unknown callback data", "data", cq.Data, "user_id", userID)
		return
	}

	if err != nil {
		log.ErrorContext(ctx, "Failed to render menu", "error", err, "data", cq.Data, "user_id", userID)
	}
}

// callbackOrigin locates the pressed message. Inaccessible and inline
// messages yield an Origin that cannot be edited.
func callbackOrigin(cq *models.CallbackQuery) menu.Origin {
	switch {
	case cq.Message.Message != nil:
		return menu.Origin{ChatID: cq.Message.Message.Chat.ID, MessageID: cq.Message.Message.ID}
	case cq.Message.InaccessibleMessage != nil:
		return menu.Origin{ChatID: cq.Message.InaccessibleMessage.Chat.ID}
	default:
		return menu.Origin{}
	}
}
