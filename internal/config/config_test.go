package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.App.Port)

	assert.Equal(t, "09:00", cfg.Shift.Start)
	assert.Equal(t, 8, cfg.Shift.Hours)
	assert.Equal(t, 15, cfg.Shift.LateThresholdMinutes)
	assert.Equal(t, 5, cfg.Shift.GracePeriodMinutes)

	assert.Equal(t, time.Hour, cfg.Sweep.Interval)
	assert.Equal(t, "18:00", cfg.Sweep.AutoClockOutTime)

	assert.False(t, cfg.Payroll.LateBasisFullRate)
	assert.Equal(t, "https://date.nager.at/api/v3", cfg.HolidayFeed.BaseURL)
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedShiftStart(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SHIFT_START", "9am")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			User:     "hr",
			Password: "pw",
			Name:     "hr_backoffice",
			SSLMode:  "require",
		},
	}

	assert.Equal(t, "postgres://hr:pw@db.internal:5433/hr_backoffice?sslmode=require", cfg.DatabaseURL())
}
