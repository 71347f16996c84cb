// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/railuxbot/internal/bot"
	"github.com/edgard/railuxbot/internal/bot/handlers"
	"github.com/edgard/railuxbot/internal/bot/tasks"
	"github.com/edgard/railuxbot/internal/broadcast"
	"github.com/edgard/railuxbot/internal/config"
	"github.com/edgard/railuxbot/internal/logger"
	"github.com/edgard/railuxbot/internal/menu"
	"github.com/edgard/railuxbot/internal/registry"
	"github.com/edgard/railuxbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, registry,
// bot, scheduler), handles graceful shutdown, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	envPath := flag.String("env", ".env", "Path to dotenv file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, *envPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)
	log.Info("Configuration loaded",
		"welcome_image_url", cfg.Menu.WelcomeImageURL,
		"webhook_url", cfg.Webhook.URL,
		"port", cfg.Webhook.Port,
		"admin_id", cfg.Telegram.AdminID,
		"registry_path", cfg.Registry.Path,
	)
	if cfg.Telegram.AdminID == 0 {
		log.Warn("ADMIN_ID is not set, broadcasting is disabled")
	}

	store := registry.NewStore(cfg.Registry.Path, cfg.Messages.ChatPlaceholder, log)
	presenter := menu.NewPresenter(cfg.Menu, cfg.Messages, log)
	dispatcher := broadcast.NewDispatcher(store, log, cfg.Broadcast.Delay)

	hDeps := handlers.HandlerDeps{
		Logger:      log,
		Config:      cfg,
		Registry:    store,
		Menu:        presenter,
		Broadcaster: dispatcher,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log), handlers.Recover(hDeps)),
		tgbot.WithDefaultHandler(handlers.NewMembershipHandler(hDeps)),
		tgbot.WithNotAsyncHandlers(),
		tgbot.WithErrorsHandler(func(err error) {
			log.Error("Telegram client error", "error", err)
		}),
	}
	if cfg.Webhook.SecretToken != "" {
		botOpts = append(botOpts, tgbot.WithWebhookSecretToken(cfg.Webhook.SecretToken))
	}

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Warn("Failed to fetch bot identity, accepting commands addressed to any bot", "error", err)
	} else {
		hDeps.BotUsername = me.Username
		log.Info("Bot identity fetched", "username", me.Username, "id", me.ID)
	}

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.PublishCommands(ctx, tg, cmdHandlers); err != nil {
		// The command menu is cosmetic; the bot works without it.
		log.Warn("Failed to publish bot commands", "error", err)
	}

	tDeps := tasks.TaskDeps{
		Logger:   log,
		Config:   cfg,
		Registry: store,
		Sender:   tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	receiver := telegram.NewReceiver(tg, cfg.Webhook, log)
	app := bot.NewBot(log, receiver, sched)

	log.Info("Starting bot...", "mode", receiver.Mode())
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
