// Package bot implements the bot lifecycle: it runs the update receiver and
// the task scheduler together and stops both on shutdown.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Receiver delivers updates to the Telegram bot until its context ends.
type Receiver interface {
	Run(ctx context.Context) error
	Mode() string
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	receiver  Receiver
	scheduler *Scheduler
}

// NewBot creates a new instance of the bot from its receiver and scheduler.
func NewBot(logger *slog.Logger, receiver Receiver, scheduler *Scheduler) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		receiver:  receiver,
		scheduler: scheduler,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on context cancellation.
// It returns an error if any component fails during startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram update receiver...", "mode", b.receiver.Mode())

		if err := b.receiver.Run(gCtx); err != nil {
			b.logger.Error("Telegram update receiver failed", "error", err)
			return fmt.Errorf("telegram receiver: %w", err)
		}
		b.logger.Info("Telegram update receiver stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram update receiver stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram receiver stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
