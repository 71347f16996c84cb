// Package config provides configuration loading, validation, and management
// for the bot. Values come from defaults, an optional YAML file, an optional
// .env file and process environment variables, in increasing precedence.
package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrConfiguration wraps every error returned by LoadConfig.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration parameters for all components.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Registry  RegistryConfig  `mapstructure:"registry"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	Menu      MenuConfig      `mapstructure:"menu"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// TelegramConfig holds the bot credentials and the privileged user.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// AdminID is the only user allowed to broadcast. Zero disables broadcasting.
	AdminID int64 `mapstructure:"admin_id" validate:"gte=0"`
}

// WebhookConfig selects push delivery. An empty URL means long polling.
type WebhookConfig struct {
	URL         string `mapstructure:"url"          validate:"omitempty,url"`
	Path        string `mapstructure:"path"         validate:"required,startswith=/"`
	Port        int    `mapstructure:"port"         validate:"min=1,max=65535"`
	SecretToken string `mapstructure:"secret_token"`
}

// Enabled reports whether the bot should run in webhook mode.
func (w WebhookConfig) Enabled() bool {
	return strings.TrimSpace(w.URL) != ""
}

// Endpoint returns the public URL registered with Telegram.
func (w WebhookConfig) Endpoint() string {
	return strings.TrimRight(strings.TrimSpace(w.URL), "/") + w.Path
}

// ListenAddr returns the local address the webhook server binds to.
func (w WebhookConfig) ListenAddr() string {
	return "0.0.0.0:" + strconv.Itoa(w.Port)
}

// RegistryConfig locates the chat registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// BroadcastConfig tunes the /rek dispatcher.
type BroadcastConfig struct {
	Command string        `mapstructure:"command" validate:"required"`
	Delay   time.Duration `mapstructure:"delay"   validate:"gte=0"`
}

// MenuConfig describes the welcome menu.
type MenuConfig struct {
	// WelcomeImageURL is a URL or Telegram file_id. Empty sends the welcome as plain text.
	WelcomeImageURL string       `mapstructure:"welcome_image_url"`
	Links           []LinkConfig `mapstructure:"links" validate:"dive"`
	HelpButton      string       `mapstructure:"help_button"      validate:"required"`
	MainMenuButton  string       `mapstructure:"main_menu_button" validate:"required"`
}

// LinkConfig is one URL button of the welcome menu.
type LinkConfig struct {
	Text string `mapstructure:"text" validate:"required"`
	URL  string `mapstructure:"url"  validate:"required,url"`
}

// MessagesConfig holds every user-facing text.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"              validate:"required"`
	WelcomeFromMenu   string `mapstructure:"welcome_from_menu"    validate:"required"`
	Help              string `mapstructure:"help"                 validate:"required"`
	BroadcastUsage    string `mapstructure:"broadcast_usage"      validate:"required"`
	BroadcastNoChats  string `mapstructure:"broadcast_no_chats"   validate:"required"`
	BroadcastDone     string `mapstructure:"broadcast_done"       validate:"required"`
	BroadcastNoneSent string `mapstructure:"broadcast_none_sent"  validate:"required"`
	BroadcastError    string `mapstructure:"broadcast_error"      validate:"required"`
	ChatPlaceholder   string `mapstructure:"chat_placeholder"     validate:"required"`
	ChatReportHeader  string `mapstructure:"chat_report_header"   validate:"required"`
	ChatReportEmpty   string `mapstructure:"chat_report_empty"    validate:"required"`
	CommandStartDesc  string `mapstructure:"command_start_desc"   validate:"required"`
	CommandHelpDesc   string `mapstructure:"command_help_desc"    validate:"required"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables one scheduled task with a cron expression.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
