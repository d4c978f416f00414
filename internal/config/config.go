package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                string
	MongoURI            string
	MongoDatabase       string
	FeedbackCollection  string
	AdminCollection     string
	CounterCollection   string
	ConnectTimeout      time.Duration
	SessionSecret       []byte
	SessionTTL          time.Duration
	SessionCookieSecure bool
	AdminUsername       string
	AdminPassword       string
	AllowedOrigins      []string
	ServerLog           *log.Logger
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	sessionTTL := 12 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			sessionTTL = parsed
		}
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		// 初代デプロイ互換の既定鍵。運用環境では必ず環境変数で上書きすること。
		sessionSecret = "feedback-system-secret-key-2024"
	}
	cookieSecure := strings.EqualFold(strings.TrimSpace(os.Getenv("SESSION_COOKIE_SECURE")), "true")

	cfg := Config{
		Addr:                envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:            envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:       envOrDefault("MONGO_DB", "feedback-collector"),
		FeedbackCollection:  envOrDefault("FEEDBACK_COLLECTION", "feedback"),
		AdminCollection:     envOrDefault("ADMIN_COLLECTION", "admins"),
		CounterCollection:   envOrDefault("COUNTER_COLLECTION", "counters"),
		ConnectTimeout:      timeout,
		SessionSecret:       []byte(sessionSecret),
		SessionTTL:          sessionTTL,
		SessionCookieSecure: cookieSecure,
		AdminUsername:       envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:       envOrDefault("ADMIN_PASSWORD", "admin123"),
		AllowedOrigins:      parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ServerLog:           log.New(os.Stdout, "[feedback-api] ", log.LstdFlags|log.Lshortfile),
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
