package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	Env        string
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	SessionTTL time.Duration
	UploadDir  string

	// SMTP settings for contact notifications; notifications are
	// disabled when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	ContactEmail string
}

func Load() Config {
	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		MongoURI:   getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/"),
		MongoDB:    getEnv("MONGO_DB", "profile"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		UploadDir:  getEnv("UPLOAD_DIR", "static/uploads"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@ticket-book.local"),
		ContactEmail: getEnv("CONTACT_EMAIL", ""),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", v)
	}
	return fallback
}
