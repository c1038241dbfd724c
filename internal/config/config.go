package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timecalc"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Slack      SlackConfig
	WorkPolicy WorkPolicyConfig
	Reminder   ReminderConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// SlackConfig holds the notification bot settings. An empty token
// switches notifications to the log-only sink.
type SlackConfig struct {
	BotToken     string
	AdminChannel string
	APIURL       string
}

// WorkPolicyConfig holds the working-time rules used by time calculation.
type WorkPolicyConfig struct {
	StandardHours  float64
	LateNightStart string
	LateNightEnd   string
}

// ReminderConfig schedules the reminder for last month's open reports. It
// runs during Hour on each of the first Days days of a month.
type ReminderConfig struct {
	Enabled bool
	Hour    int
	Days    int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Info("no .env file, using process environment")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kintai"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Slack = SlackConfig{
		BotToken:     getEnv("SLACK_BOT_TOKEN", ""),
		AdminChannel: getEnv("SLACK_ADMIN_CHANNEL", ""),
		APIURL:       getEnv("SLACK_API_URL", ""),
	}

	standardHours, err := strconv.ParseFloat(getEnv("WORK_STANDARD_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_STANDARD_HOURS: %w", err)
	}
	config.WorkPolicy = WorkPolicyConfig{
		StandardHours:  standardHours,
		LateNightStart: getEnv("WORK_LATE_NIGHT_START", "22:00"),
		LateNightEnd:   getEnv("WORK_LATE_NIGHT_END", "05:00"),
	}

	reminderEnabled, err := strconv.ParseBool(getEnv("REMINDER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_ENABLED: %w", err)
	}
	reminderHour, err := strconv.Atoi(getEnv("REMINDER_HOUR", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_HOUR: %w", err)
	}
	reminderDays, err := strconv.Atoi(getEnv("REMINDER_DAYS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_DAYS: %w", err)
	}
	config.Reminder = ReminderConfig{
		Enabled: reminderEnabled,
		Hour:    reminderHour,
		Days:    reminderDays,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Slack.BotToken != "" && c.Slack.AdminChannel == "" {
		return fmt.Errorf("SLACK_ADMIN_CHANNEL is required when SLACK_BOT_TOKEN is set")
	}
	if c.WorkPolicy.StandardHours <= 0 || c.WorkPolicy.StandardHours > 24 {
		return fmt.Errorf("WORK_STANDARD_HOURS must be within (0, 24]")
	}
	if !isClock(c.WorkPolicy.LateNightStart) || !isClock(c.WorkPolicy.LateNightEnd) {
		return fmt.Errorf("WORK_LATE_NIGHT_START and WORK_LATE_NIGHT_END must be HH:MM")
	}
	if p := c.Policy(); p.LateNightStart == p.LateNightEnd {
		return fmt.Errorf("WORK_LATE_NIGHT_START and WORK_LATE_NIGHT_END must differ")
	}
	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		return fmt.Errorf("REMINDER_HOUR must be within [0, 23]")
	}
	if c.Reminder.Days < 1 || c.Reminder.Days > 28 {
		return fmt.Errorf("REMINDER_DAYS must be within [1, 28]")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Policy converts the work policy settings for time calculation. Validate
// has already checked the clock strings.
func (c *Config) Policy() timecalc.Policy {
	start, _ := timecalc.ParseClock(c.WorkPolicy.LateNightStart)
	end, _ := timecalc.ParseClock(c.WorkPolicy.LateNightEnd)
	return timecalc.Policy{
		StandardHours:  c.WorkPolicy.StandardHours,
		LateNightStart: start,
		LateNightEnd:   end,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func isClock(s string) bool {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(m) != 2 {
		return false
	}
	hh, err1 := strconv.Atoi(h)
	mm, err2 := strconv.Atoi(m)
	return err1 == nil && err2 == nil && hh >= 0 && hh < 24 && mm >= 0 && mm < 60
}
