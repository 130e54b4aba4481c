// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP         HTTPConfig
	DynamoDB     DynamoDBConfig
	Disbursement DisbursementConfig
	Stripe       StripeConfig
	Paystack     PaystackConfig
	SMTP         SMTPConfig
	Redis        RedisConfig
	Reconciler   ReconcilerConfig
	Logging      LoggingConfig

	CommissionRate decimal.Decimal
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AdminToken      string
}

// DynamoDBConfig names the tables. Properties and users are owned by other services and read only.
type DynamoDBConfig struct {
	TransactionsTable string
	PropertiesTable   string
	UsersTable        string
}

// DisbursementConfig controls the payout queue.
type DisbursementConfig struct {
	QueueURL string
	Delay    time.Duration
}

// StripeConfig configures the hosted escrow checkout.
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// PaystackConfig configures the card gateway. An empty secret disables card payments.
type PaystackConfig struct {
	BaseURL     string
	SecretKey   string
	CallbackURL string
}

// SMTPConfig configures email delivery. An empty host logs notifications instead of sending them.
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	FromName      string
	OperatorEmail string
}

// RedisConfig enables the cross-process reconcile lock when URL is set.
type RedisConfig struct {
	URL     string
	LockTTL time.Duration
}

// ReconcilerConfig tunes polling and sweeps.
type ReconcilerConfig struct {
	Interval      time.Duration
	MaxInterval   time.Duration
	MaxAttempts   int
	CallTimeout   time.Duration
	SweepInterval time.Duration
	StuckAfter    time.Duration
	IdleTTL       time.Duration
	PaymentTTL    time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultSMTPPort        = 587
	defaultPaystackURL     = "https://api.paystack.co"
	defaultSweepInterval   = 5 * time.Minute
)

// ErrMissing is returned when a required variable is unset.
var ErrMissing = errors.New("required environment variable not set")

// Load reads a .env file when present, then the environment, applying defaults.
func Load() (Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	cfg := Config{
		HTTP: HTTPConfig{
			AdminToken: os.Getenv("ADMIN_TOKEN"),
		},
		DynamoDB: DynamoDBConfig{
			TransactionsTable: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
			PropertiesTable:   os.Getenv("DYNAMODB_PROPERTIES_TABLE_NAME"),
			UsersTable:        os.Getenv("DYNAMODB_USERS_TABLE_NAME"),
		},
		Disbursement: DisbursementConfig{
			QueueURL: os.Getenv("SQS_QUEUE_URL"),
		},
		Stripe: StripeConfig{
			SecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
			SuccessURL: os.Getenv("STRIPE_SUCCESS_URL"),
			CancelURL:  os.Getenv("STRIPE_CANCEL_URL"),
		},
		Paystack: PaystackConfig{
			BaseURL:     valueOrDefault("PAYSTACK_BASE_URL", defaultPaystackURL),
			SecretKey:   os.Getenv("PAYSTACK_SECRET_KEY"),
			CallbackURL: os.Getenv("PAYSTACK_CALLBACK_URL"),
		},
		SMTP: SMTPConfig{
			Host:          os.Getenv("SMTP_HOST"),
			Username:      os.Getenv("SMTP_USERNAME"),
			Password:      os.Getenv("SMTP_PASSWORD"),
			From:          os.Getenv("SMTP_FROM"),
			FromName:      valueOrDefault("SMTP_FROM_NAME", "Property Escrow"),
			OperatorEmail: os.Getenv("OPERATOR_EMAIL"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", "info"),
			Format:        valueOrDefault("LOG_FORMAT", "json"),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	var err error
	if cfg.HTTP.Port, err = parsePort("HTTP_PORT", defaultPort); err != nil {
		return Config{}, err
	}
	if cfg.SMTP.Port, err = parsePort("SMTP_PORT", defaultSMTPPort); err != nil {
		return Config{}, err
	}
	if cfg.Reconciler.MaxAttempts, err = parseInt("RECONCILE_MAX_ATTEMPTS", 0); err != nil {
		return Config{}, err
	}

	durations := []struct {
		key      string
		dst      *time.Duration
		fallback time.Duration
	}{
		{"HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout, defaultReadTimeout},
		{"HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout, defaultWriteTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout, defaultShutdownTimeout},
		{"DISBURSEMENT_DELAY", &cfg.Disbursement.Delay, 0},
		{"REDIS_LOCK_TTL", &cfg.Redis.LockTTL, 0},
		{"RECONCILE_INTERVAL", &cfg.Reconciler.Interval, 0},
		{"RECONCILE_MAX_INTERVAL", &cfg.Reconciler.MaxInterval, 0},
		{"PROVIDER_CALL_TIMEOUT", &cfg.Reconciler.CallTimeout, 0},
		{"SWEEP_INTERVAL", &cfg.Reconciler.SweepInterval, defaultSweepInterval},
		{"SWEEP_STUCK_AFTER", &cfg.Reconciler.StuckAfter, 0},
		{"TRANSACTION_IDLE_TTL", &cfg.Reconciler.IdleTTL, 0},
		{"PAYMENT_TTL", &cfg.Reconciler.PaymentTTL, 0},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(d.key, d.fallback); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("COMMISSION_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COMMISSION_RATE %q: %w", v, err)
		}
		cfg.CommissionRate = rate
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values every entrypoint needs.
func (c Config) Validate() error {
	required := map[string]string{
		"DYNAMODB_TRANSACTIONS_TABLE_NAME": c.DynamoDB.TransactionsTable,
		"DYNAMODB_PROPERTIES_TABLE_NAME":   c.DynamoDB.PropertiesTable,
		"DYNAMODB_USERS_TABLE_NAME":        c.DynamoDB.UsersTable,
	}
	var errs []error
	for key, v := range required {
		if v == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissing, key))
		}
	}
	if c.Stripe.SecretKey != "" && (c.Stripe.SuccessURL == "" || c.Stripe.CancelURL == "") {
		errs = append(errs, fmt.Errorf("%w: STRIPE_SUCCESS_URL and STRIPE_CANCEL_URL are required with STRIPE_SECRET_KEY", ErrMissing))
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		errs = append(errs, fmt.Errorf("%w: SMTP_FROM is required with SMTP_HOST", ErrMissing))
	}
	return errors.Join(errs...)
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePort(key string, fallback int) (int, error) {
	port, err := parseInt(key, fallback)
	if err != nil {
		return 0, err
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s %d is out of range", key, port)
	}
	return port, nil
}
