// Package tasks implements the scheduled tasks of the bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"log/slog"

	"github.com/edgard/railuxbot/internal/broadcast"
	"github.com/edgard/railuxbot/internal/config"
	"github.com/edgard/railuxbot/internal/registry"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Registry *registry.Store
	Sender   broadcast.Sender
}
