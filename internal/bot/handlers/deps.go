package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"

	"github.com/edgard/railuxbot/internal/broadcast"
	"github.com/edgard/railuxbot/internal/config"
	"github.com/edgard/railuxbot/internal/menu"
	"github.com/edgard/railuxbot/internal/registry"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	Registry    *registry.Store
	Menu        *menu.Presenter
	Broadcaster *broadcast.Dispatcher
	// BotUsername restricts /cmd@username commands to this bot. Empty accepts any.
	BotUsername string
}

// Client is the part of the Bot API the handlers call. *bot.Bot satisfies it;
// tests substitute a recording fake.
type Client interface {
	menu.Client
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

var _ Client = (*bot.Bot)(nil)
