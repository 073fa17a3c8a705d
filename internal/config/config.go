package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the bot.
type Config struct {
	TelegramToken    string
	DatabaseURL      string
	DayCheckInterval time.Duration // how often the day-rollover check runs
	ReminderTime     string        // HH:MM for the daily summary broadcast
	Location         *time.Location
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DayCheckInterval: parseSeconds(strings.TrimSpace(os.Getenv("DAY_CHECK_INTERVAL_SECONDS"))),
		ReminderTime:     strings.TrimSpace(os.Getenv("REMINDER_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_tracker.db"
	}

	// Coarse timer: the rollover check is cheap but there is no reason to
	// run it more often than every 15s or rarer than once a minute.
	if cfg.DayCheckInterval == 0 {
		cfg.DayCheckInterval = 30 * time.Second
	}
	if cfg.DayCheckInterval < 15*time.Second {
		cfg.DayCheckInterval = 15 * time.Second
	}
	if cfg.DayCheckInterval > time.Minute {
		cfg.DayCheckInterval = time.Minute
	}

	if cfg.ReminderTime == "" {
		cfg.ReminderTime = "09:00"
	}

	loc := time.Local
	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
		}
		loc = parsed
	}
	cfg.Location = loc

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseSeconds(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
