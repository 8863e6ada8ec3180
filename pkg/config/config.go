package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	JWTSecret       string
	CORSOrigins     []string
	RateLimit       string // e.g. "100-M", parsed by ulule/limiter
	CSVUploadDir    string
	AccrualSchedule string // cron expression for the interest batch
	ShutdownGrace   time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if
// present. Environment variables override .env values.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CSV_UPLOAD_DIR", "")
	// First day of every month at 01:00.
	viper.SetDefault("INTEREST_ACCRUAL_SCHEDULE", "0 1 1 * *")
	viper.SetDefault("SHUTDOWN_GRACE", "10s")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		CORSOrigins:     viper.GetStringSlice("CORS_ORIGINS"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
		CSVUploadDir:    viper.GetString("CSV_UPLOAD_DIR"),
		AccrualSchedule: viper.GetString("INTEREST_ACCRUAL_SCHEDULE"),
		ShutdownGrace:   viper.GetDuration("SHUTDOWN_GRACE"),
	}
	return cfg, nil
}
