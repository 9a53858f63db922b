package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Lookup cache settings
	CacheTTL time.Duration

	// Mail settings
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailFromName    string
	MailFromAddress string

	// Notification settings. When NotifyAwait is true the case-creation
	// response waits for every recipient send to finish; otherwise dispatch
	// runs detached from the request.
	NotifyAwait bool

	// Reminder settings
	ReminderWindowDays int

	// When true, sub-department deletion is also blocked by cases that
	// reference the sub-department through their subDepartments list, not
	// just the singular field.
	GuardPluralRefs bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "5000"),
		DatabasePath:    getEnv("DATABASE_PATH", "./data/jansunwayi.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		MailFromName:    getEnv("MAIL_FROM_NAME", "District Magistrate Office, Ayodhya"),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", ""),
	}

	var err error
	cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	cfg.ReminderWindowDays, err = strconv.Atoi(getEnv("REMINDER_WINDOW_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_WINDOW_DAYS: %w", err)
	}

	cfg.NotifyAwait = getEnv("NOTIFY_AWAIT", "false") == "true"
	cfg.GuardPluralRefs = getEnv("GUARD_PLURAL_REFS", "false") == "true"

	return cfg, nil
}

// MailConfigured reports whether SMTP credentials are present. Without them
// the server still runs, but every send fails and is logged.
func (c *Config) MailConfigured() bool {
	return c.SMTPUsername != "" && c.SMTPPassword != ""
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
