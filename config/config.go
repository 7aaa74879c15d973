// Package config loads the bot settings from the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const defaultPort = "8080"

// Config holds everything the entrypoints need. It is loaded once at start up
// and passed down explicitly.
type Config struct {
	// BotToken authenticates calls to the Slack Web API.
	BotToken string
	// VerificationToken is compared to the token field of every slash command.
	VerificationToken string
	// SigningSecret enables request signature checks on the webhook when set.
	SigningSecret string
	// AppToken is used by socket mode only.
	AppToken string

	Port     string
	LogLevel string
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		BotToken:          getenv("SLACK_BOT_TOKEN"),
		VerificationToken: getenv("SLACK_VERIFICATION_TOKEN"),
		SigningSecret:     getenv("SLACK_SIGNING_SECRET"),
		AppToken:          getenv("SLACK_APP_TOKEN"),
		Port:              getenv("PORT"),
		LogLevel:          getenv("LOG_LEVEL"),
	}

	if cfg.BotToken == "" {
		cfg.BotToken = getenv("SLACK_API_TOKEN")
	}
	if cfg.BotToken == "" {
		return Config{}, errors.New("SLACK_BOT_TOKEN must be set")
	}
	if !strings.HasPrefix(cfg.BotToken, "xoxb-") {
		return Config{}, errors.New("SLACK_BOT_TOKEN must have the prefix \"xoxb-\"")
	}

	if cfg.VerificationToken == "" {
		return Config{}, errors.New("SLACK_VERIFICATION_TOKEN must be set")
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	return cfg, nil
}

// RequireAppToken checks the app-level token needed for socket mode.
func (c Config) RequireAppToken() error {
	if c.AppToken == "" {
		return errors.New("SLACK_APP_TOKEN must be set")
	}
	if !strings.HasPrefix(c.AppToken, "xapp-") {
		return fmt.Errorf("SLACK_APP_TOKEN must have the prefix %q", "xapp-")
	}
	return nil
}
