package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DYNAMODB_TRANSACTIONS_TABLE_NAME", "transactions")
	t.Setenv("DYNAMODB_PROPERTIES_TABLE_NAME", "properties")
	t.Setenv("DYNAMODB_USERS_TABLE_NAME", "users")
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.HTTP.Port)
		assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.Equal(t, "https://api.paystack.co", cfg.Paystack.BaseURL)
		assert.Equal(t, 5*time.Minute, cfg.Reconciler.SweepInterval)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.True(t, cfg.CommissionRate.IsZero())
	})

	t.Run("Overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("DISBURSEMENT_DELAY", "24h")
		t.Setenv("RECONCILE_INTERVAL", "3s")
		t.Setenv("RECONCILE_MAX_ATTEMPTS", "7")
		t.Setenv("COMMISSION_RATE", "0.05")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.HTTP.Port)
		assert.Equal(t, 24*time.Hour, cfg.Disbursement.Delay)
		assert.Equal(t, 3*time.Second, cfg.Reconciler.Interval)
		assert.Equal(t, 7, cfg.Reconciler.MaxAttempts)
		assert.True(t, decimal.RequireFromString("0.05").Equal(cfg.CommissionRate))
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("Missing Tables", func(t *testing.T) {
		t.Setenv("DYNAMODB_TRANSACTIONS_TABLE_NAME", "")
		t.Setenv("DYNAMODB_PROPERTIES_TABLE_NAME", "")
		t.Setenv("DYNAMODB_USERS_TABLE_NAME", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissing)
	})

	t.Run("Invalid Values", func(t *testing.T) {
		setRequired(t)
		for key, value := range map[string]string{
			"HTTP_PORT":          "70000",
			"SMTP_PORT":          "abc",
			"RECONCILE_INTERVAL": "soon",
			"COMMISSION_RATE":    "four percent",
		} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				_, err := Load()
				assert.Error(t, err)
			})
		}
	})

	t.Run("Stripe Needs Redirects", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
		t.Setenv("STRIPE_SUCCESS_URL", "")
		t.Setenv("STRIPE_CANCEL_URL", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissing)
	})
}
