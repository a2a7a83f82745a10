package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Extra origins allowed by CORS, comma separated
	AllowedOrigins []string
	// Staff endpoints (inquiry list/export) accept HS256 tokens signed with this secret
	AdminJWTSecret string
	// SMTP Configuration (Brevo)
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string // Verified sender email (different from SMTP login)
	InquiryEmailTo string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitGlobalThreshold  int
	RateLimitInquiryThreshold int
	// Landing page templates/content are reloaded from disk on every request when set
	TemplateDir string
}

// ClientConfig is the configuration of the inquire terminal client.
type ClientConfig struct {
	APIBaseURL     string
	AdminToken     string
	AdminJWTSecret string
	LogFile        string
	RequestTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:8080"), "/"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@reliableteam.ai"),
		InquiryEmailTo: getEnv("INQUIRY_EMAIL_TO", "talent@reliableteam.ai"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitInquiryThreshold: getEnvInt("RATE_LIMIT_INQUIRY_THRESHOLD", 5),
		TemplateDir:               getEnv("TEMPLATE_DIR", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Inquiries will be kept in memory only.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.AdminJWTSecret == "" {
		log.Println("WARNING: ADMIN_JWT_SECRET not configured. Staff inquiry endpoints will reject every request.")
	}

	return cfg, nil
}

// LoadClientConfig reads the terminal client settings. Flags override these values.
func LoadClientConfig() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		LogFile:        getEnv("INQUIRE_LOG_FILE", "inquire.log"),
		RequestTimeout: time.Duration(getEnvInt("INQUIRE_LIST_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes
func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
