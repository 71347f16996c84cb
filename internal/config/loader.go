package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps configuration keys to the environment variables the bot
// has always been deployed with. The names carry no prefix.
var envBindings = map[string]string{
	"telegram.token":         "BOT_TOKEN",
	"telegram.admin_id":      "ADMIN_ID",
	"menu.welcome_image_url": "WELCOME_IMAGE_URL",
	"webhook.url":            "WEBHOOK_URL",
	"webhook.port":           "PORT",
	"webhook.secret_token":   "WEBHOOK_SECRET",
	"registry.path":          "CHATS_FILE",
	"logger.level":           "LOG_LEVEL",
	"logger.json":            "LOG_JSON",
	"broadcast.delay":        "BROADCAST_DELAY",
}

// LoadConfig loads and validates configuration from:
//  1. Default values
//  2. configPath (YAML, optional)
//  3. envPath (dotenv, optional; only fills variables missing from the environment)
//  4. Environment variables
//
// Either path may be empty. A missing token is reported as a validation error.
func LoadConfig(configPath, envPath string) (*Config, error) {
	v := viper.New()
	v.AllowEmptyEnv(true)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	if err := readConfigFile(v, configPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if err := applyDotEnv(v, envPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}
	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// Validate checks the struct tags of the whole configuration tree.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// readConfigFile merges an optional YAML file. A path that does not exist is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("Config file not found, using defaults and environment", "path", path)
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// applyDotEnv copies values from a dotenv file for bound variables that are
// not present in the process environment.
func applyDotEnv(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	for key, env := range envBindings {
		if _, set := os.LookupEnv(env); set {
			continue
		}
		// viper lowercases dotenv keys
		name := strings.ToLower(env)
		if dotenv.IsSet(name) {
			v.Set(key, dotenv.GetString(name))
		}
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)
	cfg.Logger.Level = strings.ToLower(strings.TrimSpace(cfg.Logger.Level))
	cfg.Broadcast.Command = strings.TrimPrefix(strings.TrimSpace(cfg.Broadcast.Command), "/")
	cfg.Menu.WelcomeImageURL = strings.TrimSpace(cfg.Menu.WelcomeImageURL)
	if len(cfg.Menu.Links) == 0 {
		cfg.Menu.Links = append([]LinkConfig(nil), DefaultMenuLinks...)
	}
}
