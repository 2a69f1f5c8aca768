package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Shift       ShiftConfig
	Sweep       SweepConfig
	Payroll     PayrollConfig
	HolidayFeed HolidayFeedConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// ShiftConfig describes the single office shift used to derive attendance
// status and overtime. Times are wall-clock "HH:MM" values.
type ShiftConfig struct {
	Start                string
	Hours                int
	LateThresholdMinutes int
	GracePeriodMinutes   int
}

// SweepConfig controls the scheduled maintenance jobs.
type SweepConfig struct {
	Interval         time.Duration
	AutoClockOutTime string
}

// PayrollConfig tunes payroll computation. When LateBasisFullRate is set,
// the late deduction for monthly employees is charged against the full
// monthly rate instead of the prorated basic pay.
type PayrollConfig struct {
	LateBasisFullRate bool
}

// HolidayFeedConfig points at the public holiday feed consumed by the
// holiday sync job.
type HolidayFeedConfig struct {
	BaseURL     string
	CountryCode string
	Timeout     time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_backoffice"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	shiftHours, err := strconv.Atoi(getEnv("SHIFT_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_HOURS: %w", err)
	}
	lateThreshold, err := strconv.Atoi(getEnv("SHIFT_LATE_THRESHOLD_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_LATE_THRESHOLD_MINUTES: %w", err)
	}
	gracePeriod, err := strconv.Atoi(getEnv("SHIFT_GRACE_PERIOD_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIFT_GRACE_PERIOD_MINUTES: %w", err)
	}

	config.Shift = ShiftConfig{
		Start:                getEnv("SHIFT_START", "09:00"),
		Hours:                shiftHours,
		LateThresholdMinutes: lateThreshold,
		GracePeriodMinutes:   gracePeriod,
	}

	sweepInterval, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}

	config.Sweep = SweepConfig{
		Interval:         sweepInterval,
		AutoClockOutTime: getEnv("AUTO_CLOCK_OUT_TIME", "18:00"),
	}

	config.Payroll = PayrollConfig{
		LateBasisFullRate: getEnv("PAYROLL_LATE_BASIS_FULL_RATE", "false") == "true",
	}

	feedTimeout, err := time.ParseDuration(getEnv("HOLIDAY_FEED_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_FEED_TIMEOUT: %w", err)
	}

	config.HolidayFeed = HolidayFeedConfig{
		BaseURL:     getEnv("HOLIDAY_FEED_BASE_URL", "https://date.nager.at/api/v3"),
		CountryCode: getEnv("HOLIDAY_FEED_COUNTRY", "BD"),
		Timeout:     feedTimeout,
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
	if _, err := time.Parse("15:04", c.Shift.Start); err != nil {
		return fmt.Errorf("SHIFT_START must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.Sweep.AutoClockOutTime); err != nil {
		return fmt.Errorf("AUTO_CLOCK_OUT_TIME must be HH:MM: %w", err)
	}
	if c.Shift.Hours <= 0 || c.Shift.Hours > 24 {
		return fmt.Errorf("SHIFT_HOURS must be between 1 and 24")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
