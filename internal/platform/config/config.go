package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	defaultJWTSecret         = "a-very-secret-key-should-be-longer-and-random"
	defaultInternalJWTSecret = "an-internal-secret-key-should-be-longer-and-random"
	defaultLoanTerm          = 14 * 24 * time.Hour
	defaultMaxActiveLoans    = 5
	defaultPenaltyRate       = "0.50"
	defaultTopBooksLimit     = 5
	defaultRemoteTimeout     = 5 * time.Second
	defaultInternalTokenTTL  = 30 * time.Minute
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string

	// Inbound user tokens, issued by the gateway
	JWTSecret string
	JWTIssuer string

	// Outbound service-to-service tokens
	InternalJWTSecret   string
	InternalJWTIssuer   string
	InternalJWTAudience string
	InternalJWTTTL      time.Duration

	CatalogServiceURL string
	UserServiceURL    string
	RemoteTimeout     time.Duration

	// Lending policy
	LoanTerm          time.Duration
	MaxActiveLoans    int
	PenaltyRatePerDay decimal.Decimal
	TopBooksLimit     int

	// Overdue reminders
	ReminderCron string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	PosthogAPIKey   string
	PosthogEndpoint string
	RateLimit       string
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Invalid values fall back to their defaults with a warning.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "bookhub-gateway")
	viper.SetDefault("INTERNAL_JWT_SECRET", defaultInternalJWTSecret)
	viper.SetDefault("INTERNAL_JWT_ISSUER", "bookhub-loan-service")
	viper.SetDefault("INTERNAL_JWT_AUDIENCE", "bookhub-services")
	viper.SetDefault("INTERNAL_JWT_TTL", defaultInternalTokenTTL.String())
	viper.SetDefault("CATALOG_SERVICE_URL", "http://catalog-service:8080")
	viper.SetDefault("USER_SERVICE_URL", "http://user-service:8080")
	viper.SetDefault("REMOTE_TIMEOUT", defaultRemoteTimeout.String())
	viper.SetDefault("LOAN_TERM", defaultLoanTerm.String())
	viper.SetDefault("MAX_ACTIVE_LOANS", defaultMaxActiveLoans)
	viper.SetDefault("PENALTY_RATE_PER_DAY", defaultPenaltyRate)
	viper.SetDefault("TOP_BOOKS_LIMIT", defaultTopBooksLimit)
	viper.SetDefault("REMINDER_CRON", "@daily")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SENDER_EMAIL", "no-reply@bookhub.local")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.InternalJWTSecret = viper.GetString("INTERNAL_JWT_SECRET")
	if cfg.InternalJWTSecret == "" || cfg.InternalJWTSecret == defaultInternalJWTSecret {
		cfg.InternalJWTSecret = defaultInternalJWTSecret
		log.Println("Warning: INTERNAL_JWT_SECRET not set. Using default insecure key.")
	}

	cfg.InternalJWTTTL = durationOrDefault("INTERNAL_JWT_TTL", defaultInternalTokenTTL)
	cfg.RemoteTimeout = durationOrDefault("REMOTE_TIMEOUT", defaultRemoteTimeout)
	cfg.LoanTerm = durationOrDefault("LOAN_TERM", defaultLoanTerm)

	cfg.MaxActiveLoans = viper.GetInt("MAX_ACTIVE_LOANS")
	if cfg.MaxActiveLoans <= 0 {
		log.Printf("Warning: Invalid value for MAX_ACTIVE_LOANS ('%s'). Defaulting to %d.\n", viper.GetString("MAX_ACTIVE_LOANS"), defaultMaxActiveLoans)
		cfg.MaxActiveLoans = defaultMaxActiveLoans
	}

	cfg.TopBooksLimit = viper.GetInt("TOP_BOOKS_LIMIT")
	if cfg.TopBooksLimit <= 0 {
		log.Printf("Warning: Invalid value for TOP_BOOKS_LIMIT ('%s'). Defaulting to %d.\n", viper.GetString("TOP_BOOKS_LIMIT"), defaultTopBooksLimit)
		cfg.TopBooksLimit = defaultTopBooksLimit
	}

	rateStr := viper.GetString("PENALTY_RATE_PER_DAY")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		log.Printf("Warning: Invalid value for PENALTY_RATE_PER_DAY ('%s'). Defaulting to %s.\n", rateStr, defaultPenaltyRate)
		rate = decimal.RequireFromString(defaultPenaltyRate)
	}
	cfg.PenaltyRatePerDay = rate

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Overdue reminders will only be logged.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = strings.ToLower(viper.GetString("LOG_LEVEL"))
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.InternalJWTIssuer = viper.GetString("INTERNAL_JWT_ISSUER")
	cfg.InternalJWTAudience = viper.GetString("INTERNAL_JWT_AUDIENCE")
	cfg.CatalogServiceURL = strings.TrimRight(viper.GetString("CATALOG_SERVICE_URL"), "/")
	cfg.UserServiceURL = strings.TrimRight(viper.GetString("USER_SERVICE_URL"), "/")
	cfg.ReminderCron = viper.GetString("REMINDER_CRON")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUsername = viper.GetString("SMTP_USERNAME")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SenderEmail = viper.GetString("SENDER_EMAIL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

// LoanPolicy returns the lending rules carried by the configuration.
func (c *Config) LoanPolicy() domain.LoanPolicy {
	return domain.LoanPolicy{
		Term:              c.LoanTerm,
		MaxActiveLoans:    c.MaxActiveLoans,
		PenaltyRatePerDay: c.PenaltyRatePerDay,
		TopBooksLimit:     c.TopBooksLimit,
	}
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
