// Package telegram handles the setup of the Telegram bot, the registration of
// its handlers and the delivery of updates by webhook or long polling.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/railuxbot/internal/bot/handlers"
)

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", tokenPrefix(token))
	return b, nil
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}

// applyMiddleware wraps a handler function with a slice of middleware.
// Middleware are applied in reverse order so the first one in the slice is the outermost.
func applyMiddleware(handler bot.HandlerFunc, mw []bot.Middleware) bot.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// HandlerRegistrar is implemented by *bot.Bot.
type HandlerRegistrar interface {
	RegisterHandler(handlerType bot.HandlerType, pattern string, matchType bot.MatchType, f bot.HandlerFunc, m ...bot.Middleware) string
	RegisterHandlerMatchFunc(matchFunc bot.MatchFunc, f bot.HandlerFunc, m ...bot.Middleware) string
}

// RegisterHandlers registers command and callback handlers with the bot,
// applying each handler's own middleware.
func RegisterHandlers(b HandlerRegistrar, logger *slog.Logger, registeredHandlers map[string]handlers.RegisteredHandler) error {
	if b == nil {
		return fmt.Errorf("bot instance cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "handler_registry")

	if len(registeredHandlers) == 0 {
		log.Warn("No handlers provided for registration.")
		return nil
	}

	log.Info("Registering Telegram handlers...", "count", len(registeredHandlers))

	registered := 0
	for key, regHandler := range registeredHandlers {
		if regHandler.Handler == nil {
			log.Warn("Skipping registration for nil handler", "key", key, "pattern", regHandler.Pattern)
			continue
		}

		finalHandler := applyMiddleware(regHandler.Handler, regHandler.Middleware)
		if regHandler.MatchFunc != nil {
			b.RegisterHandlerMatchFunc(regHandler.MatchFunc, finalHandler)
		} else {
			b.RegisterHandler(regHandler.HandlerType, regHandler.Pattern, regHandler.MatchType, finalHandler)
		}
		registered++
		log.Debug("Registered handler", "key", key, "pattern", regHandler.Pattern, "match_type", regHandler.MatchType, "middleware_count", len(regHandler.Middleware))
	}

	log.Info("Registered Telegram handlers successfully", "count", registered)
	return nil
}

// CommandPublisher is implemented by *bot.Bot.
type CommandPublisher interface {
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// BotCommands lists the commands that carry a description, sorted by name.
func BotCommands(registeredHandlers map[string]handlers.RegisteredHandler) []models.BotCommand {
	var commands []models.BotCommand
	for key, regHandler := range registeredHandlers {
		if regHandler.Description == "" || !strings.HasPrefix(key, "/") {
			continue
		}
		commands = append(commands, models.BotCommand{
			Command:     regHandler.Pattern,
			Description: regHandler.Description,
		})
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Command < commands[j].Command })
	return commands
}

// PublishCommands sets the command menu shown by Telegram clients.
func PublishCommands(ctx context.Context, b CommandPublisher, registeredHandlers map[string]handlers.RegisteredHandler) error {
	commands := BotCommands(registeredHandlers)
	if len(commands) == 0 {
		return nil
	}
	if _, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	return nil
}
