package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Development bool
	// API configuration
	APIPort int
	// Postgres configuration
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     int
	PostgresDB       string

	// Admin authentication
	JWTSecret         string
	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string

	// SMTP configuration
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	SMTPSender        string
	SenderName        string
	NotificationEmail string

	// Telegram configuration
	TelegramBotToken string
	TelegramChatID   string

	// Uploads
	UploadsDir       string
	UploadsURLPrefix string
}

// EmailEnabled reports whether admin notifications can go out by email.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.NotificationEmail != ""
}

// TelegramEnabled reports whether admin notifications can go out to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}

// PostgresDSN builds the connection string for the gorm postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)
}

// LoadConfig loads the configuration from environment variables.
// Validation is left to the caller so CLI flags can fill gaps first.
func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Development:       getEnvAsBool("DEVELOPMENT", false),
		PostgresUser:      getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "password"),
		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnvAsInt("POSTGRES_PORT", 5432),
		PostgresDB:        getEnv("POSTGRES_DB", "resultdesk"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminUser:         getEnv("ADMIN_USER", ""),
		AdminPassword:     getEnv("ADMIN_PASS", ""),
		AdminPasswordHash: getEnv("ADMIN_PASS_HASH", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPSender:        getEnv("SMTP_SENDER", ""),
		SenderName:        getEnv("SENDER_NAME", "gizaresult"),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnv("TELEGRAM_CHAT_ID", ""),
		UploadsDir:        getEnv("UPLOADS_DIR", "uploads"),
		UploadsURLPrefix:  strings.TrimRight(getEnv("UPLOADS_URL_PREFIX", "/uploads"), "/"),

		APIPort: getEnvAsInt("API_PORT", 3000),
	}
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.AdminUser == "" {
		return fmt.Errorf("ADMIN_USER is required")
	}

	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASS or ADMIN_PASS_HASH is required")
	}

	if c.PostgresDB == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}

	if c.UploadsDir == "" {
		return fmt.Errorf("UPLOADS_DIR is required")
	}

	if c.UploadsURLPrefix == "" || !strings.HasPrefix(c.UploadsURLPrefix, "/") {
		return fmt.Errorf("UPLOADS_URL_PREFIX must be an absolute path, got %q", c.UploadsURLPrefix)
	}

	if c.EmailEnabled() && c.SMTPSender == "" {
		return fmt.Errorf("SMTP_SENDER is required when SMTP_HOST is set")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
