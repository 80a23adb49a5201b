package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/erazemk/garderoba/internal/model"
)

// Config is the process configuration, assembled from environment
// variables. A .env file, when present, is loaded into the environment by
// the caller before FromEnv runs.
type Config struct {
	BotToken string // Telegram bot API token

	DBPath  string // SQLite database path
	Port    string // keep-alive HTTP listen port
	LogFile string // optional log file, "" = stdout/stderr only

	DefaultZone     *time.Location // zone for users without a valid timezone
	NotifyHour      int            // default reminder hour for new users
	NotifyMinute    int            // default reminder minute for new users
	NotifyByDefault bool           // whether reminders start enabled

	TickInterval time.Duration // reminder scheduler tick
}

// FromEnv reads the configuration from the environment. BOT_TOKEN is
// required; everything else has a default.
func FromEnv() (*Config, error) {
	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		DBPath:   envOr("GARDEROBA_DB", "garderoba.db"),
		Port:     envOr("PORT", "8080"),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	zone, err := model.LoadZone(envOr("DEFAULT_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("parsing DEFAULT_TIMEZONE: %w", err)
	}
	cfg.DefaultZone = zone

	cfg.NotifyHour, cfg.NotifyMinute, err = model.ParseClock(envOr("DEFAULT_NOTIFY_TIME", "09:00"))
	if err != nil {
		return nil, fmt.Errorf("parsing DEFAULT_NOTIFY_TIME: %w", err)
	}

	if v := os.Getenv("NOTIFY_DEFAULT_ENABLED"); v != "" {
		cfg.NotifyByDefault, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing NOTIFY_DEFAULT_ENABLED: %w", err)
		}
	}

	cfg.TickInterval, err = time.ParseDuration(envOr("REMINDER_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("parsing REMINDER_INTERVAL: %w", err)
	}
	// Reminders match on the exact local minute, so a tick longer than a
	// minute would skip reminder times entirely.
	if cfg.TickInterval < time.Second || cfg.TickInterval > time.Minute {
		return nil, fmt.Errorf("REMINDER_INTERVAL %s out of range (1s to 1m)", cfg.TickInterval)
	}

	return cfg, nil
}

// DefaultPreference is the preference row inserted for a user seen for the
// first time.
func (c *Config) DefaultPreference(ownerID int64) model.Preference {
	return model.Preference{
		OwnerID:       ownerID,
		NotifyEnabled: c.NotifyByDefault,
		NotifyHour:    c.NotifyHour,
		NotifyMinute:  c.NotifyMinute,
		Timezone:      c.DefaultZone.String(),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
