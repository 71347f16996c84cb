package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	// MatchFunc, when set, replaces Pattern and MatchType for routing.
	MatchFunc   tgbot.MatchFunc
	// Description is published with setMyCommands. Empty keeps the command unlisted.
	Description string
}

// Handler keys for non-command registrations.
const (
	CallbackKey = "callback"
)

// RegisterAllCommands initializes and returns a map of all available bot commands.
// It configures each command with appropriate handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)
	msgs := deps.Config.Messages

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		MatchFunc:   CommandMatch("start", deps.BotUsername),
		Handler:     NewStartHandler(deps),
		Description: msgs.CommandStartDesc,
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		MatchFunc:   CommandMatch("help", deps.BotUsername),
		Handler:     NewHelpHandler(deps),
		Description: msgs.CommandHelpDesc,
	}

	broadcastCommand := deps.Config.Broadcast.Command
	handlers["/"+broadcastCommand] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     broadcastCommand,
		MatchFunc:   CommandMatch(broadcastCommand, deps.BotUsername),
		Handler:     NewRekHandler(deps),
		Middleware:  []tgbot.Middleware{AdminOnly(deps)},
	}

	// An empty prefix matches every callback, so unknown data is still answered.
	handlers[CallbackKey] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     "",
		Handler:     NewCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
