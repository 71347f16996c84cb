package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/railuxbot/internal/config"
)

const (
	healthPath      = "/healthz"
	shutdownTimeout = 10 * time.Second
)

// Updater is the part of *bot.Bot that receives updates.
type Updater interface {
	Start(ctx context.Context)
	StartWebhook(ctx context.Context)
	WebhookHandler() http.HandlerFunc
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	DeleteWebhook(ctx context.Context, params *bot.DeleteWebhookParams) (bool, error)
}

var _ Updater = (*bot.Bot)(nil)

// Receiver feeds updates to the bot, by webhook when a public URL is
// configured and by long polling otherwise.
type Receiver struct {
	bot    Updater
	cfg    config.WebhookConfig
	logger *slog.Logger
}

// NewReceiver creates a Receiver.
func NewReceiver(b Updater, cfg config.WebhookConfig, logger *slog.Logger) *Receiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Receiver{
		bot:    b,
		cfg:    cfg,
		logger: logger.With("component", "telegram_receiver"),
	}
}

// Mode names the delivery mode for logging.
func (r *Receiver) Mode() string {
	if r.cfg.Enabled() {
		return "webhook"
	}
	return "polling"
}

// Run receives updates until ctx is cancelled.
func (r *Receiver) Run(ctx context.Context) error {
	if r.cfg.Enabled() {
		return r.runWebhook(ctx)
	}
	return r.runPolling(ctx)
}

func (r *Receiver) runPolling(ctx context.Context) error {
	// getUpdates is rejected while a webhook is set.
	if _, err := r.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		return fmt.Errorf("failed to delete webhook before polling: %w", err)
	}

	r.logger.InfoContext(ctx, "Starting long polling")
	r.bot.Start(ctx)
	r.logger.InfoContext(ctx, "Long polling stopped")
	return nil
}

func (r *Receiver) runWebhook(ctx context.Context) error {
	endpoint := r.cfg.Endpoint()
	if _, err := r.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         endpoint,
		SecretToken: r.cfg.SecretToken,
	}); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	r.logger.InfoContext(ctx, "Webhook registered", "url", endpoint)

	server := &http.Server{
		Addr:              r.cfg.ListenAddr(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.bot.StartWebhook(gCtx)
		return nil
	})

	g.Go(func() error {
		r.logger.InfoContext(gCtx, "Webhook server listening", "addr", server.Addr, "path", r.cfg.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webhook server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.logger.Error("Webhook server shutdown failed", "error", err)
		}
		r.logger.Info("Webhook server stopped")
		return nil
	})

	return g.Wait()
}

// Handler returns the HTTP handler served in webhook mode: Telegram updates
// at the configured path and a liveness probe at /healthz.
func (r *Receiver) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(r.cfg.Path, r.bot.WebhookHandler())
	mux.HandleFunc(healthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
