// Package broadcast delivers an administrator's text to every registered chat.
package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/edgard/railuxbot/internal/registry"
)

// ErrNoDestinations is returned when the registry holds no chats.
var ErrNoDestinations = errors.New("no registered chats to broadcast to")

// Sender is the subset of the Bot API the dispatcher calls.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

var _ Sender = (*bot.Bot)(nil)

// Registry provides the destinations of a broadcast.
type Registry interface {
	Load() registry.Chats
}

// Result describes one broadcast run.
type Result struct {
	RunID string
	// Delivered holds the names of chats that accepted the message, in send order.
	Delivered []string
	Failed    []int64
	Total     int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSleeper replaces the pause between sends. Used by tests.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(d *Dispatcher) {
		d.sleep = sleep
	}
}

// Dispatcher sends one text to every registered chat, sequentially, pausing
// after every attempt.
type Dispatcher struct {
	registry Registry
	logger   *slog.Logger
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(reg Registry, logger *slog.Logger, delay time.Duration, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		registry: reg,
		logger:   logger.With("component", "broadcast"),
		delay:    delay,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Broadcast sends payload through sender verbatim, without a parse mode, to
// each registered chat in ascending id order. A failed send is logged and
// skipped. If ctx is cancelled mid-run the partial result is returned
// together with ctx's error.
func (d *Dispatcher) Broadcast(ctx context.Context, sender Sender, payload string) (*Result, error) {
	chats := d.registry.Load()
	if len(chats) == 0 {
		return nil, ErrNoDestinations
	}

	ids := chats.IDs()
	result := &Result{
		RunID: uuid.NewString(),
		Total: len(ids),
	}
	log := d.logger.With("run_id", result.RunID)
	log.InfoContext(ctx, "Starting broadcast", "destinations", len(ids), "payload_length", len([]rune(payload)))

	for _, id := range ids {
		_, err := sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: id,
			Text:   payload,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to deliver broadcast", "chat_id", id, "error", err)
			result.Failed = append(result.Failed, id)
		} else {
			log.DebugContext(ctx, "Broadcast delivered", "chat_id", id)
			result.Delivered = append(result.Delivered, chats[id])
		}

		if err := d.sleep(ctx, d.delay); err != nil {
			log.WarnContext(ctx, "Broadcast interrupted", "error", err,
				"delivered", len(result.Delivered), "failed", len(result.Failed))
			return result, fmt.Errorf("broadcast interrupted: %w", err)
		}
	}

	log.InfoContext(ctx, "Broadcast finished", "delivered", len(result.Delivered), "failed", len(result.Failed))
	return result, nil
}

// ExtractPayload strips the leading /command or /command@botname token and
// the whitespace after it. It returns the empty string when text does not
// start with the command.
func ExtractPayload(text, command string) string {
	prefix := "/" + command
	if !strings.HasPrefix(text, prefix) {
		return ""
	}
	rest := text[len(prefix):]

	if strings.HasPrefix(rest, "@") {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			return ""
		}
		rest = rest[end:]
	} else if rest != "" {
		r := []rune(rest)[0]
		if !unicode.IsSpace(r) {
			// "/rekfoo" is a different command.
			return ""
		}
	}

	return strings.TrimLeftFunc(rest, unicode.IsSpace)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
