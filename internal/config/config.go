package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Settings  SettingsDBConfig
	Paxminer  PaxminerConfig
	Scheduler SchedulerConfig
	Slack     SlackConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type ServerConfig struct {
	Port string
}

// SettingsDBConfig points at the shared Postgres settings store. The
// store is owned elsewhere; this service only reads it.
type SettingsDBConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PaxminerConfig holds the shared credentials for the per-region
// PAXminer MySQL server. Which database to use comes from each region's
// settings row, not from here.
type PaxminerConfig struct {
	Host             string
	User             string
	Password         string
	ScheduleDatabase string // schema holding qsignups_master
	ConnTimeout      time.Duration
}

type SchedulerConfig struct {
	Enabled       bool
	BackblastSpec string
	ContactSpec   string
}

// SlackConfig selects how a rate-limited Slack directory listing is
// handled: "wait" pauses once and lets the region fail, "retry" pauses
// once and retries the call once.
type SlackConfig struct {
	RateLimitPolicy  string
	RateLimitBackoff time.Duration
}

const (
	RateLimitWait  = "wait"
	RateLimitRetry = "retry"
)

func Load() (Config, error) {
	// Load .env if present; production sets env vars directly.
	_ = godotenv.Load()

	cfg := Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "slack-reminders"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "9080"),
		},
		Settings: SettingsDBConfig{
			URL:             strings.TrimSpace(os.Getenv("SETTINGS_DATABASE_URL")),
			MaxOpenConns:    getInt("SETTINGS_DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("SETTINGS_DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getDuration("SETTINGS_DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Paxminer: PaxminerConfig{
			Host:             strings.TrimSpace(os.Getenv("PAXMINER_SQL_SERVER")),
			User:             strings.TrimSpace(os.Getenv("PAXMINER_USERNAME")),
			Password:         os.Getenv("PAXMINER_PASSWORD"),
			ScheduleDatabase: getEnv("PAXMINER_SCHEDULE_DATABASE", "f3stcharles"),
			ConnTimeout:      getDuration("PAXMINER_CONN_TIMEOUT", 10*time.Second),
		},
		Scheduler: SchedulerConfig{
			Enabled:       getBool("SCHEDULER_ENABLED", false),
			BackblastSpec: getEnv("SCHEDULER_BACKBLAST_SPEC", "0 8 * * *"),
			ContactSpec:   getEnv("SCHEDULER_CONTACT_SPEC", "30 8 * * *"),
		},
		Slack: SlackConfig{
			RateLimitPolicy:  getEnv("SLACK_RATE_LIMIT_POLICY", RateLimitWait),
			RateLimitBackoff: getDuration("SLACK_RATE_LIMIT_BACKOFF", 30*time.Second),
		},
	}

	if cfg.Settings.URL == "" {
		return Config{}, fmt.Errorf("SETTINGS_DATABASE_URL is required")
	}
	if cfg.Paxminer.Host == "" {
		return Config{}, fmt.Errorf("PAXMINER_SQL_SERVER is required")
	}
	if cfg.Paxminer.User == "" {
		return Config{}, fmt.Errorf("PAXMINER_USERNAME is required")
	}
	if cfg.Slack.RateLimitPolicy != RateLimitWait && cfg.Slack.RateLimitPolicy != RateLimitRetry {
		return Config{}, fmt.Errorf("SLACK_RATE_LIMIT_POLICY must be %q or %q", RateLimitWait, RateLimitRetry)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
