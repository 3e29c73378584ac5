package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	LogLevel       string
	GinMode        string
	IsProduction   bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"

	// Ledger settings
	BaseCurrency             string
	BalanceTolerance         decimal.Decimal
	PeriodLockDate           *time.Time
	OpeningBalanceEquityCode string
	ReferencePrefix          string
	ReferenceMaxAttempts     int
	ChartOfAccountsFile      string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "ledger-engine")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("BALANCE_TOLERANCE", "0.01")
	viper.SetDefault("PERIOD_LOCK_DATE", "")
	viper.SetDefault("OPENING_BALANCE_EQUITY_CODE", "3900")
	viper.SetDefault("REFERENCE_PREFIX", "JE")
	viper.SetDefault("REFERENCE_MAX_ATTEMPTS", 5)
	viper.SetDefault("CHART_OF_ACCOUNTS_FILE", "")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:              viper.GetString("DATABASE_URL"),
		Port:                     viper.GetString("PORT"),
		LogLevel:                 strings.ToLower(viper.GetString("LOG_LEVEL")),
		GinMode:                  viper.GetString("GIN_MODE"),
		IsProduction:             viper.GetBool("IS_PRODUCTION"),
		MigrationsPath:           viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:                viper.GetString("JWT_SECRET"),
		JWTIssuer:                viper.GetString("JWT_ISSUER"),
		RateLimit:                viper.GetString("RATE_LIMIT"),
		BaseCurrency:             strings.ToUpper(viper.GetString("BASE_CURRENCY")),
		OpeningBalanceEquityCode: viper.GetString("OPENING_BALANCE_EQUITY_CODE"),
		ReferencePrefix:          viper.GetString("REFERENCE_PREFIX"),
		ReferenceMaxAttempts:     viper.GetInt("REFERENCE_MAX_ATTEMPTS"),
		ChartOfAccountsFile:      viper.GetString("CHART_OF_ACCOUNTS_FILE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1 // Default to 1 hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if len(cfg.BaseCurrency) != 3 {
		return nil, fmt.Errorf("BASE_CURRENCY must be a 3 letter code, got %q", cfg.BaseCurrency)
	}

	cfg.BalanceTolerance, err = decimal.NewFromString(viper.GetString("BALANCE_TOLERANCE"))
	if err != nil || !cfg.BalanceTolerance.IsPositive() {
		return nil, fmt.Errorf("BALANCE_TOLERANCE must be a positive decimal, got %q", viper.GetString("BALANCE_TOLERANCE"))
	}

	if lock := strings.TrimSpace(viper.GetString("PERIOD_LOCK_DATE")); lock != "" {
		lockDate, err := time.Parse("2006-01-02", lock)
		if err != nil {
			return nil, fmt.Errorf("PERIOD_LOCK_DATE must be YYYY-MM-DD: %w", err)
		}
		cfg.PeriodLockDate = &lockDate
	}

	if cfg.ReferenceMaxAttempts <= 0 {
		log.Printf("Warning: Invalid value for REFERENCE_MAX_ATTEMPTS (%d). Defaulting to 5.\n", cfg.ReferenceMaxAttempts)
		cfg.ReferenceMaxAttempts = 5
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
